package codec

import (
	"strings"

	"github.com/neuronlabs/includes/errors"
)

var (
	// ErrCodec is the root error classification for the codec package.
	ErrCodec = errors.New("codec")
	// ErrMarshal is the error classification for the marshaling failures.
	ErrMarshal = errors.Wrap(ErrCodec, "marshal")
	// ErrUnmarshal is the error classification for the unmarshaling failures.
	ErrUnmarshal = errors.Wrap(ErrCodec, "unmarshal")
	// ErrInvalidDocument is the error classification for the documents that doesn't match the JSON:API structure.
	ErrInvalidDocument = errors.Wrap(ErrUnmarshal, "invalid document")
	// ErrInvalidResource is the error classification for invalid resource objects.
	ErrInvalidResource = errors.Wrap(ErrInvalidDocument, "invalid resource")
	// ErrInvalidRelationship is the error classification for invalid relationship objects.
	ErrInvalidRelationship = errors.Wrap(ErrInvalidDocument, "invalid relationship")
	// ErrInvalidLinks is the error classification for invalid links objects.
	ErrInvalidLinks = errors.Wrap(ErrInvalidDocument, "invalid links")
	// ErrResponse is the error classification for the error objects received in the document 'errors' member.
	ErrResponse = errors.Wrap(ErrCodec, "response")
)

// Error is the JSON:API error object.
// More info can be found at: 'https://jsonapi.org/format/#errors'
type Error struct {
	// ID is a unique identifier for this particular occurrence of a problem.
	ID string `json:"id,omitempty"`
	// Title is a short, human-readable summary of the problem that SHOULD NOT change from occurrence to occurrence of the problem, except for purposes of localization.
	Title string `json:"title,omitempty"`
	// Detail is a human-readable explanation specific to this occurrence of the problem. Like title, this field’s value can be localized.
	Detail string `json:"detail,omitempty"`
	// Status is the status code applicable to this problem, expressed as a string value.
	Status string `json:"status,omitempty"`
	// Code is an application-specific error code, expressed as a string value.
	Code string `json:"code,omitempty"`
	// Source is an object containing references to the source of the error.
	Source map[string]interface{} `json:"source,omitempty"`
	// Meta is an object containing non-standard meta-information about the error.
	Meta map[string]interface{} `json:"meta,omitempty"`
}

// Error implements error interface.
func (e *Error) Error() string {
	sb := strings.Builder{}
	e.error(&sb)
	return strings.TrimSpace(sb.String())
}

func (e *Error) error(sb *strings.Builder) {
	if e.ID != "" {
		sb.WriteString(e.ID)
		sb.WriteString(" - ")
	}
	if e.Status != "" {
		sb.WriteRune('[')
		sb.WriteString(e.Status)
		sb.WriteRune(']')
		sb.WriteRune(' ')
	}
	if e.Title != "" {
		sb.WriteString(e.Title)
		sb.WriteRune(' ')
	}
	if e.Detail != "" {
		sb.WriteString(e.Detail)
		sb.WriteRune(' ')
	}
	if e.Code != "" {
		sb.WriteString("CODE: ")
		sb.WriteString(e.Code)
	}
}

// Unwrap returns the ErrResponse classification.
func (e *Error) Unwrap() error {
	return ErrResponse
}

func errorFrom(v interface{}) (*Error, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	e := &Error{}
	e.ID, _ = stringValue(m["id"])
	e.Title, _ = stringValue(m["title"])
	e.Detail, _ = stringValue(m["detail"])
	// Some servers encode the status as a number.
	e.Status, _ = stringValue(m["status"])
	e.Code, _ = stringValue(m["code"])
	e.Source, _ = m["source"].(map[string]interface{})
	e.Meta, _ = m["meta"].(map[string]interface{})
	return e, true
}
