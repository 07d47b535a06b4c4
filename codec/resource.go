package codec

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/neuronlabs/includes/errors"
)

// ResourceIdentifier is the minimal {type, id} pair that references a resource without embedding it.
// https://jsonapi.org/format/#document-resource-identifier-objects
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Key gets the 'type:id' identity key of the identifier.
func (r ResourceIdentifier) Key() string {
	return r.Type + ":" + r.ID
}

// Resource is the JSON:API resource object.
// https://jsonapi.org/format/#document-resource-objects
type Resource struct {
	ID            string                   `json:"id"`
	Type          string                   `json:"type"`
	Attributes    map[string]interface{}   `json:"attributes,omitempty"`
	Relationships map[string]*Relationship `json:"relationships,omitempty"`
	Links         Links                    `json:"links,omitempty"`
	Meta          Meta                     `json:"meta,omitempty"`
}

// Key gets the 'type:id' identity key of the resource.
func (r *Resource) Key() string {
	return r.Type + ":" + r.ID
}

// Identifier gets the resource identifier of given resource.
func (r *Resource) Identifier() ResourceIdentifier {
	return ResourceIdentifier{Type: r.Type, ID: r.ID}
}

// UnmarshalJSON implements json.Unmarshaler interface. The resource is unmarshaled leniently.
func (r *Resource) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WrapDet(err, ErrUnmarshal)
	}
	res, err := parseResource(raw, false)
	if err != nil {
		return err
	}
	*r = *res
	return nil
}

// Relationship is the JSON:API relationship object. The relationship data might be
// a to-one identifier, a to-many identifiers sequence or none.
// https://jsonapi.org/format/#document-resource-object-relationships
type Relationship struct {
	// ToOne is the to-one relationship identifier.
	ToOne *ResourceIdentifier
	// ToMany are the to-many relationship identifiers.
	ToMany []*ResourceIdentifier
	// Many defines if the relationship data is a to-many sequence.
	Many  bool
	Links Links
	Meta  Meta
}

// HasData checks if the relationship contains the 'data' member.
func (r *Relationship) HasData() bool {
	return r != nil && (r.Many || r.ToOne != nil)
}

// Identifiers gets all relationship identifiers in the order of their occurrence.
func (r *Relationship) Identifiers() []*ResourceIdentifier {
	if r == nil {
		return nil
	}
	if r.Many {
		return r.ToMany
	}
	if r.ToOne != nil {
		return []*ResourceIdentifier{r.ToOne}
	}
	return nil
}

// MarshalJSON implements json.Marshaler interface.
func (r *Relationship) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}
	switch {
	case r.Many:
		toMany := r.ToMany
		if toMany == nil {
			toMany = []*ResourceIdentifier{}
		}
		out["data"] = toMany
	case r.ToOne != nil:
		out["data"] = r.ToOne
	}
	if len(r.Links) > 0 {
		out["links"] = r.Links
	}
	if len(r.Meta) > 0 {
		out["meta"] = r.Meta
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler interface. The relationship is unmarshaled leniently.
func (r *Relationship) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WrapDet(err, ErrUnmarshal)
	}
	rel, err := parseRelationship(raw, false)
	if err != nil {
		return err
	}
	*r = *rel
	return nil
}

// ResourceFrom converts the parsed JSON value into a Resource. A value is a resource if
// it is an object that contains both 'type' and 'id' members. The conversion is lenient -
// malformed relationships and attributes are skipped.
func ResourceFrom(v interface{}) (*Resource, bool) {
	switch rt := v.(type) {
	case *Resource:
		return rt, rt != nil
	case Resource:
		return &rt, true
	}
	res, err := parseResource(v, false)
	if err != nil {
		return nil, false
	}
	return res, true
}

// ResourcesFrom converts the parsed JSON sequence into resources. Non resource elements are skipped.
func ResourcesFrom(v interface{}) []*Resource {
	switch rt := v.(type) {
	case []*Resource:
		return rt
	case []Resource:
		resources := make([]*Resource, len(rt))
		for i := range rt {
			resources[i] = &rt[i]
		}
		return resources
	case []map[string]interface{}:
		resources := make([]*Resource, 0, len(rt))
		for _, raw := range rt {
			if res, ok := ResourceFrom(raw); ok {
				resources = append(resources, res)
			}
		}
		return resources
	case []interface{}:
		resources := make([]*Resource, 0, len(rt))
		for _, raw := range rt {
			if res, ok := ResourceFrom(raw); ok {
				resources = append(resources, res)
			} else {
				logger.Debug2f("Skipping non resource value: %v", raw)
			}
		}
		return resources
	}
	return nil
}

// IsResourceShaped checks if provided parsed JSON object contains both 'type' and 'id' members.
func IsResourceShaped(m map[string]interface{}) bool {
	if m == nil {
		return false
	}
	typ, hasType := m["type"]
	id, hasID := m["id"]
	return hasType && hasID && typ != nil && id != nil
}

func parseResource(v interface{}, strict bool) (*Resource, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.NewDetf(ErrInvalidResource, "resource must be an object, got: %T", v)
	}
	if !IsResourceShaped(m) {
		return nil, errors.NewDet(ErrInvalidResource, "resource must contain 'type' and 'id' members")
	}
	res := &Resource{}
	var isString bool
	if res.Type, isString = stringValue(m["type"]); !isString && strict {
		return nil, errors.NewDetf(ErrInvalidResource, "resource 'type' must be a string, got: %T", m["type"])
	}
	if res.ID, isString = stringValue(m["id"]); !isString && strict {
		return nil, errors.NewDetf(ErrInvalidResource, "resource 'id' must be a string, got: %T", m["id"])
	}
	if strict && res.Type == "" {
		return nil, errors.NewDet(ErrInvalidResource, "resource 'type' must not be empty")
	}

	if attrs, exists := m["attributes"]; exists && attrs != nil {
		res.Attributes, ok = attrs.(map[string]interface{})
		if !ok && strict {
			return nil, errors.NewDetf(ErrInvalidResource, "resource: '%s' attributes must be an object", res.Key())
		}
	}

	if rels, exists := m["relationships"]; exists && rels != nil {
		relMap, ok := rels.(map[string]interface{})
		if !ok {
			if strict {
				return nil, errors.NewDetf(ErrInvalidResource, "resource: '%s' relationships must be an object", res.Key())
			}
		} else {
			res.Relationships = make(map[string]*Relationship, len(relMap))
			for name, rawRel := range relMap {
				rel, err := parseRelationship(rawRel, strict)
				if err != nil {
					if strict {
						var det *errors.DetailedError
						if errors.As(err, &det) {
							det.WrapDetail(fmt.Sprintf("resource: '%s' relationship: '%s'.", res.Key(), name))
						}
						return nil, err
					}
					logger.Debug2f("Skipping invalid relationship: '%s' of resource: '%s': %v", name, res.Key(), err)
					continue
				}
				res.Relationships[name] = rel
			}
		}
	}

	var err error
	if res.Links, err = linksFrom(m["links"], strict); err != nil {
		return nil, err
	}
	res.Meta, _ = m["meta"].(map[string]interface{})
	return res, nil
}

func parseRelationship(v interface{}, strict bool) (*Relationship, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.NewDetf(ErrInvalidRelationship, "relationship must be an object, got: %T", v)
	}
	rel := &Relationship{}
	switch data := m["data"].(type) {
	case nil:
	case []interface{}:
		rel.Many = true
		rel.ToMany = make([]*ResourceIdentifier, 0, len(data))
		for _, rawID := range data {
			id, err := parseIdentifier(rawID)
			if err != nil {
				if strict {
					return nil, err
				}
				continue
			}
			rel.ToMany = append(rel.ToMany, id)
		}
	default:
		id, err := parseIdentifier(data)
		if err != nil {
			if strict {
				return nil, err
			}
			break
		}
		rel.ToOne = id
	}

	var err error
	if rel.Links, err = linksFrom(m["links"], strict); err != nil {
		return nil, err
	}
	rel.Meta, _ = m["meta"].(map[string]interface{})
	return rel, nil
}

func parseIdentifier(v interface{}) (*ResourceIdentifier, error) {
	m, ok := v.(map[string]interface{})
	if !ok || !IsResourceShaped(m) {
		return nil, errors.NewDetf(ErrInvalidRelationship, "relationship data must be a resource identifier: %v", v)
	}
	id := &ResourceIdentifier{}
	id.Type, _ = stringValue(m["type"])
	id.ID, _ = stringValue(m["id"])
	return id, nil
}

// stringValue gets the string representation of the scalar value. Returns false if the value is not a string.
func stringValue(v interface{}) (string, bool) {
	switch vt := v.(type) {
	case nil:
		return "", false
	case string:
		return vt, true
	case json.Number:
		return vt.String(), false
	case float64:
		return strconv.FormatFloat(vt, 'f', -1, 64), false
	default:
		return fmt.Sprint(vt), false
	}
}
