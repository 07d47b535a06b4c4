// Package includes resolves the JSON:API relationship references into nested objects.
//
// A JSON:API document carries its primary data together with a flat pool of side-loaded
// 'included' resources. The package rehydrates every relationship identifier of the primary
// data with the matching included resource, recursively. Each resolved object contains
// the resource 'id' and 'type', its attributes flattened to the top level, the original
// 'attributes' object and the resolved relationships.
//
// The references not found in the included resources degrade instead of failing:
//	- Resolve and ResolveDocument keep the bare {type, id} identifier,
//	- GetRelated returns nil,
//	- GetRelatedList drops the reference.
// The fallback might be unified with the resolver.MissPolicy option.
//
// The package functions use the default resolver. A custom one might be created with the
// resolver.New or resolver.NewFromConfig functions and set with the SetDefault.
// The packages are:
// - codec - contains the JSON:API document model with its lenient and strict decoding.
// - resolver - contains the Resolver with its options.
// - config - contains the viper based configuration.
// - log - is the logging interface for the package.
// - errors - contains the classified errors used by the packages.
// - namer - contains the key naming conventions.
package includes
