package codec

import (
	"encoding/json"

	"github.com/neuronlabs/includes/errors"
)

// Document is the top-level JSON:API document.
// The Data is one of:
//	- nil - for the null or absent primary data,
//	- *Resource - for a single primary resource,
//	- []*Resource - for the primary resources collection,
//	- any other parsed JSON value if the document is unmarshaled leniently and the data is not resource shaped.
// https://jsonapi.org/format/#document-top-level
type Document struct {
	Data     interface{}            `json:"data"`
	Included []*Resource            `json:"included,omitempty"`
	Links    Links                  `json:"links,omitempty"`
	Meta     Meta                   `json:"meta,omitempty"`
	Errors   []*Error               `json:"errors,omitempty"`
	JSONAPI  map[string]interface{} `json:"jsonapi,omitempty"`
}

// Err returns the errors.MultiError composed of the document 'errors' member. Each of them is classified
// as ErrResponse. Returns nil if the document has no errors.
func (d *Document) Err() error {
	if d == nil || len(d.Errors) == 0 {
		return nil
	}
	multi := make(errors.MultiError, len(d.Errors))
	for i, e := range d.Errors {
		multi[i] = e
	}
	return multi
}

// Pagination extracts the pagination links and the total number of resources from the document
// 'links' and 'meta' members. The total is taken either from 'meta.total' or 'meta.pagination.total'.
// Returns nil if the document has no pagination information.
func (d *Document) Pagination() *PaginationLinks {
	if d == nil {
		return nil
	}
	p := &PaginationLinks{}
	var found bool
	for name, dst := range map[string]*string{
		"self":  &p.Self,
		"first": &p.First,
		"prev":  &p.Prev,
		"next":  &p.Next,
		"last":  &p.Last,
	} {
		if href, ok := d.Links.Href(name); ok {
			*dst = href
			if name != "self" {
				found = true
			}
		}
	}

	if total, ok := int64Value(d.Meta["total"]); ok {
		p.Total = total
		found = true
	} else if pagination, ok := d.Meta["pagination"].(map[string]interface{}); ok {
		if total, ok := int64Value(pagination["total"]); ok {
			p.Total = total
			found = true
		}
	}
	if !found {
		return nil
	}
	return p
}

// UnmarshalJSON implements json.Unmarshaler interface. The document is unmarshaled leniently.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WrapDet(err, ErrUnmarshal)
	}
	doc, err := documentFrom(raw, &UnmarshalOptions{})
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// DocumentFrom converts already parsed JSON value into the Document.
func DocumentFrom(v interface{}, options *UnmarshalOptions) (*Document, error) {
	if options == nil {
		options = &UnmarshalOptions{}
	}
	return documentFrom(v, options)
}

func documentFrom(v interface{}, options *UnmarshalOptions) (*Document, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.NewDetf(ErrInvalidDocument, "document must be an object, got: %T", v)
	}
	strict := options.StrictUnmarshal

	if strict {
		_, hasData := m["data"]
		_, hasErrors := m["errors"]
		_, hasMeta := m["meta"]
		if !hasData && !hasErrors && !hasMeta {
			return nil, errors.NewDet(ErrInvalidDocument, "document must contain at least one of: 'data', 'errors', 'meta' members")
		}
		if hasData && hasErrors {
			return nil, errors.NewDet(ErrInvalidDocument, "document must not contain both 'data' and 'errors' members")
		}
	}

	doc := &Document{}
	var err error
	if doc.Data, err = primaryData(m["data"], strict); err != nil {
		return nil, err
	}

	if rawIncluded, exists := m["included"]; exists && rawIncluded != nil {
		included, ok := rawIncluded.([]interface{})
		if !ok && strict {
			return nil, errors.NewDetf(ErrInvalidDocument, "document 'included' member must be an array, got: %T", rawIncluded)
		}
		doc.Included = make([]*Resource, 0, len(included))
		for i, rawResource := range included {
			res, err := parseResource(rawResource, strict)
			if err != nil {
				if strict {
					var det *errors.DetailedError
					if errors.As(err, &det) {
						det.WrapDetailf("included[%d].", i)
					}
					return nil, err
				}
				logger.Debug2f("Skipping invalid included resource at index: %d: %v", i, err)
				continue
			}
			doc.Included = append(doc.Included, res)
		}
	}

	if doc.Links, err = linksFrom(m["links"], strict); err != nil {
		return nil, err
	}
	doc.Meta, _ = m["meta"].(map[string]interface{})
	doc.JSONAPI, _ = m["jsonapi"].(map[string]interface{})

	if rawErrors, ok := m["errors"].([]interface{}); ok {
		for _, rawErr := range rawErrors {
			if e, ok := errorFrom(rawErr); ok {
				doc.Errors = append(doc.Errors, e)
			}
		}
	}
	return doc, nil
}

func primaryData(v interface{}, strict bool) (interface{}, error) {
	switch data := v.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		res, err := parseResource(data, strict)
		if err != nil {
			if strict {
				return nil, err
			}
			logger.Debug2f("Primary data is not a resource: %v", err)
			return data, nil
		}
		return res, nil
	case []interface{}:
		resources := make([]*Resource, 0, len(data))
		for i, rawResource := range data {
			res, err := parseResource(rawResource, strict)
			if err != nil {
				if strict {
					var det *errors.DetailedError
					if errors.As(err, &det) {
						det.WrapDetailf("data[%d].", i)
					}
					return nil, err
				}
				logger.Debug2f("Primary data element: %d is not a resource. Keeping raw data: %v", i, err)
				return data, nil
			}
			resources = append(resources, res)
		}
		return resources, nil
	default:
		if strict {
			return nil, errors.NewDetf(ErrInvalidDocument, "primary data must be an object, array or null, got: %T", v)
		}
		return v, nil
	}
}
