package resolver

import (
	"github.com/neuronlabs/includes/codec"
	"github.com/neuronlabs/includes/config"
	"github.com/neuronlabs/includes/errors"
	"github.com/neuronlabs/includes/log"
	"github.com/neuronlabs/includes/namer"
)

var logger = log.NewModuleLogger("resolver")

// Resolver resolves the JSON:API relationship references into nested objects.
// The Resolver is immutable and safe for concurrent use.
type Resolver struct {
	options Options
}

// New creates new Resolver with provided options.
func New(options ...Option) *Resolver {
	r := &Resolver{}
	for _, option := range options {
		option(&r.options)
	}
	if r.options.MaxDepth < 0 {
		r.options.MaxDepth = 0
	}
	return r
}

// NewFromConfig creates new Resolver based on the resolver config.
func NewFromConfig(cfg *config.Resolver) (*Resolver, error) {
	if cfg == nil {
		return New(), nil
	}
	policy, err := ParseMissPolicy(cfg.MissPolicy)
	if err != nil {
		return nil, err
	}
	keyNamer, err := namer.ForConvention(cfg.NamingConvention)
	if err != nil {
		return nil, err
	}
	if cfg.MaxDepth < 0 {
		return nil, errors.NewDetf(ErrInvalidOption, "max depth must not be negative: %d", cfg.MaxDepth)
	}
	return New(
		WithMissPolicy(policy),
		WithMaxDepth(cfg.MaxDepth),
		WithRequireIncluded(cfg.RequireIncluded),
		WithKeyNamer(keyNamer),
	), nil
}

// Options gets the copy of the resolver options.
func (r *Resolver) Options() Options {
	return r.options
}

// Resolve resolves provided 'data' with the 'included' resources.
// The 'data' might be:
//	- nil - returned as nil,
//	- *codec.Resource, codec.Resource or a parsed JSON object with both 'type' and 'id' members - resolved into an Object,
//	- a sequence of the above - resolved element-wise with the order preserved,
//	- any other value - returned unchanged.
func (r *Resolver) Resolve(data interface{}, included []*codec.Resource) interface{} {
	s := r.newResolution(included, r.policy(MissKeepIdentifier))
	s.resolveRelationships = !(r.options.RequireIncluded && len(included) == 0)
	return s.resolveValue(data)
}

// ResolveDocument resolves the primary data of provided document with its included resources.
// The result is a shallow copy of the document with only the Data replaced.
func (r *Resolver) ResolveDocument(doc *codec.Document) *codec.Document {
	if doc == nil {
		return nil
	}
	resolved := *doc
	resolved.Data = r.Resolve(doc.Data, doc.Included)
	return &resolved
}

// Related gets the resolved object related to the 'resource' by the relationship 'name'.
// For a to-many relationship only the first identifier is used.
// Returns nil if the relationship doesn't exist, has no data, there are no included resources
// or the related resource is not found.
func (r *Resolver) Related(resource *codec.Resource, name string, included []*codec.Resource) Object {
	if resource == nil || len(included) == 0 {
		return nil
	}
	identifiers := resource.Relationships[name].Identifiers()
	if len(identifiers) == 0 {
		return nil
	}
	s := r.newResolution(included, r.policy(MissNull))
	s.push(resource.Key())
	obj, _ := s.resolveReference(identifiers[0])
	return obj
}

// RelatedList gets all resolved objects related to the 'resource' by the relationship 'name'.
// A to-one relationship result is wrapped into a single element sequence.
// The references not found in the included resources are dropped. The result is never nil.
func (r *Resolver) RelatedList(resource *codec.Resource, name string, included []*codec.Resource) []Object {
	if resource == nil {
		return []Object{}
	}
	rel := resource.Relationships[name]
	if !rel.HasData() {
		return []Object{}
	}
	if !rel.Many {
		obj := r.Related(resource, name, included)
		if obj == nil {
			return []Object{}
		}
		return []Object{obj}
	}

	s := r.newResolution(included, r.policy(MissDrop))
	s.push(resource.Key())
	related := make([]Object, 0, len(rel.ToMany))
	for _, id := range rel.ToMany {
		if obj, keep := s.resolveReference(id); keep {
			related = append(related, obj)
		}
	}
	return related
}

func (r *Resolver) policy(operationDefault MissPolicy) MissPolicy {
	if r.options.MissPolicy == MissDefault {
		return operationDefault
	}
	return r.options.MissPolicy
}

func (r *Resolver) name(key string) string {
	if r.options.KeyNamer == nil {
		return key
	}
	return r.options.KeyNamer(key)
}
