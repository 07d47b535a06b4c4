package codec

import (
	"encoding/json"

	"github.com/neuronlabs/includes/errors"
)

// Links is used to represent a `links` object.
// http://jsonapi.org/format/#document-links
type Links map[string]interface{}

// Validate checks if all the members of the links object are valid links.
func (l Links) Validate() error {
	// Each member of a links object is a “link”. A link MUST be represented as
	// either:
	//  - a string containing the link’s URL.
	//  - an object (“link object”) which can contain the following members:
	//    - href: a string containing the link’s URL.
	//    - meta: a meta object containing non-standard meta-information about the
	//            link.
	//  - null if the link does not exist.
	for k, v := range l {
		if _, ok := linkHref(v); ok || v == nil {
			continue
		}
		return errors.NewDetf(ErrInvalidLinks, "the %s member of the links object was not a string or link object", k)
	}
	return nil
}

// Href gets the URL of the link with given 'name'. Both string and link object members are supported.
func (l Links) Href(name string) (string, bool) {
	v, ok := l[name]
	if !ok {
		return "", false
	}
	return linkHref(v)
}

// Link is used to represent a member of the `links` object.
type Link struct {
	Href string `json:"href"`
	Meta Meta   `json:"meta,omitempty"`
}

// Meta is used to represent a `meta` object.
// http://jsonapi.org/format/#document-meta
type Meta map[string]interface{}

// PaginationLinks is the structure that contain the pagination links and the total number of resources.
// https://jsonapi.org/examples/#pagination
type PaginationLinks struct {
	Self  string `json:"self,omitempty"`
	First string `json:"first,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last,omitempty"`

	Total int64 `json:"total"`
}

func linkHref(v interface{}) (string, bool) {
	switch lt := v.(type) {
	case string:
		return lt, true
	case Link:
		return lt.Href, true
	case *Link:
		if lt == nil {
			return "", false
		}
		return lt.Href, true
	case map[string]interface{}:
		href, ok := lt["href"].(string)
		return href, ok
	}
	return "", false
}

func linksFrom(v interface{}, strict bool) (Links, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		if strict {
			return nil, errors.NewDetf(ErrInvalidLinks, "links must be an object, got: %T", v)
		}
		return nil, nil
	}
	links := Links(m)
	if strict {
		if err := links.Validate(); err != nil {
			return nil, err
		}
	}
	return links, nil
}

func int64Value(v interface{}) (int64, bool) {
	switch vt := v.(type) {
	case float64:
		return int64(vt), true
	case int:
		return int64(vt), true
	case int64:
		return vt, true
	case json.Number:
		i, err := vt.Int64()
		if err != nil {
			f, err := vt.Float64()
			if err != nil {
				return 0, false
			}
			return int64(f), true
		}
		return i, true
	}
	return 0, false
}
