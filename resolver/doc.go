/*
Package resolver rehydrates the JSON:API relationship references into nested objects.

The Resolver takes the primary data of a JSON:API document together with its 'included'
side-loaded resources and returns plain Object trees. Each resolved Object contains the
'id' and 'type' of the resource, all of its attributes flattened to the top level, the
original 'attributes' object and a key for each relationship that has data.

A relationship reference is replaced by the matching included resource (by type and id),
resolved recursively. References not found in the included resources degrade:

	Resolve, ResolveDocument  - to the bare {type, id} identifier Object,
	Related                   - to nil,
	RelatedList               - are dropped from the result.

The fallback might be unified for all operations with the MissPolicy option.

A reference to a resource that is already being resolved on the current path (a cycle in
the included resources graph) is always emitted as a bare identifier.

The Resolver never returns errors and never mutates its input. It is safe for concurrent use.
*/
package resolver
