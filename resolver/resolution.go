package resolver

import (
	"github.com/neuronlabs/includes/codec"
)

// resolution is the state of a single top-level resolver call.
type resolution struct {
	r      *Resolver
	policy MissPolicy

	included []*codec.Resource
	index    map[string]*codec.Resource

	// path contains the keys of the resources being resolved, the depth is the number of them.
	path  map[string]int
	depth int

	resolveRelationships bool
}

func (r *Resolver) newResolution(included []*codec.Resource, policy MissPolicy) *resolution {
	return &resolution{
		r:                    r,
		policy:               policy,
		included:             included,
		path:                 map[string]int{},
		resolveRelationships: true,
	}
}

// lookup finds the first included resource that matches given identifier.
func (s *resolution) lookup(id *codec.ResourceIdentifier) (*codec.Resource, bool) {
	if s.index == nil {
		s.index = make(map[string]*codec.Resource, len(s.included))
		for _, res := range s.included {
			if res == nil {
				continue
			}
			if _, exists := s.index[res.Key()]; !exists {
				s.index[res.Key()] = res
			}
		}
	}
	res, ok := s.index[id.Key()]
	return res, ok
}

func (s *resolution) push(key string) {
	s.path[key]++
	s.depth++
}

func (s *resolution) pop(key string) {
	if s.path[key] <= 1 {
		delete(s.path, key)
	} else {
		s.path[key]--
	}
	s.depth--
}

func (s *resolution) resolveValue(data interface{}) interface{} {
	switch dt := data.(type) {
	case nil:
		return nil
	case *codec.Resource:
		if dt == nil {
			return nil
		}
		return s.resolveResource(dt)
	case codec.Resource:
		return s.resolveResource(&dt)
	case []*codec.Resource:
		resolved := make([]Object, len(dt))
		for i, res := range dt {
			if res != nil {
				resolved[i] = s.resolveResource(res)
			}
		}
		return resolved
	case []codec.Resource:
		resolved := make([]Object, len(dt))
		for i := range dt {
			resolved[i] = s.resolveResource(&dt[i])
		}
		return resolved
	case []interface{}:
		resolved := make([]interface{}, len(dt))
		for i, elem := range dt {
			resolved[i] = s.resolveValue(elem)
		}
		return resolved
	case []map[string]interface{}:
		resolved := make([]interface{}, len(dt))
		for i, elem := range dt {
			resolved[i] = s.resolveValue(elem)
		}
		return resolved
	case map[string]interface{}:
		if !codec.IsResourceShaped(dt) {
			return data
		}
		res, ok := codec.ResourceFrom(dt)
		if !ok {
			return data
		}
		return s.resolveResource(res)
	default:
		return data
	}
}

func (s *resolution) resolveResource(res *codec.Resource) Object {
	obj := make(Object, 3+len(res.Attributes)+len(res.Relationships))
	obj[KeyID] = res.ID
	obj[KeyType] = res.Type
	// Attributes are spread after the id and type, thus an attribute might override them.
	for key, value := range res.Attributes {
		obj[s.r.name(key)] = value
	}
	obj[KeyAttributes] = res.Attributes

	if len(res.Relationships) == 0 || !s.resolveRelationships {
		return obj
	}

	key := res.Key()
	s.push(key)
	defer s.pop(key)

	for name, rel := range res.Relationships {
		if !rel.HasData() {
			continue
		}
		relKey := s.r.name(name)
		if rel.Many {
			related := make([]Object, 0, len(rel.ToMany))
			for _, id := range rel.ToMany {
				if value, keep := s.resolveReference(id); keep {
					related = append(related, value)
				}
			}
			obj[relKey] = related
			continue
		}
		value, keep := s.resolveReference(rel.ToOne)
		switch {
		case !keep:
		case value == nil:
			// Untyped nil for the null policy.
			obj[relKey] = nil
		default:
			obj[relKey] = value
		}
	}
	return obj
}

// resolveReference resolves the reference 'id'. The 'keep' is false if the reference should be removed.
func (s *resolution) resolveReference(id *codec.ResourceIdentifier) (value Object, keep bool) {
	if id == nil {
		return nil, false
	}
	target, found := s.lookup(id)
	if !found {
		logger.Debug2f("Reference: '%s' not found in the included resources. Policy: %s", id.Key(), s.policy)
		switch s.policy {
		case MissNull:
			return nil, true
		case MissDrop:
			return nil, false
		default:
			return Identifier(*id), true
		}
	}

	if _, onPath := s.path[id.Key()]; onPath {
		logger.Debug3f("Reference: '%s' forms a cycle. Keeping the identifier.", id.Key())
		return Identifier(*id), true
	}
	if s.r.options.MaxDepth > 0 && s.depth > s.r.options.MaxDepth {
		logger.Debug3f("Reference: '%s' exceeds max depth: %d. Keeping the identifier.", id.Key(), s.r.options.MaxDepth)
		return Identifier(*id), true
	}
	return s.resolveResource(target), true
}
