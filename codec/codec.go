// Package codec contains the JSON:API document model together with its lenient and strict decoding.
package codec

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/neuronlabs/includes/errors"
	"github.com/neuronlabs/includes/log"
)

// MediaType is the identifier for the JSON API media type
// see http://jsonapi.org/format/#document-structure
const MediaType = "application/vnd.api+json"

var logger = log.NewModuleLogger("codec")

// UnmarshalOptions is the structure that contains unmarshal options.
type UnmarshalOptions struct {
	// StrictUnmarshal rejects the documents that doesn't match the JSON:API structure
	// instead of skipping malformed parts.
	StrictUnmarshal bool
	// UseNumber decodes the numbers as json.Number instead of float64.
	UseNumber bool
}

// Unmarshal unmarshals the JSON:API document from provided 'data'.
func Unmarshal(data []byte, options *UnmarshalOptions) (*Document, error) {
	return Decode(bytes.NewReader(data), options)
}

// Decode reads and decodes the JSON:API document from the reader 'r'.
func Decode(r io.Reader, options *UnmarshalOptions) (*Document, error) {
	if options == nil {
		options = &UnmarshalOptions{}
	}
	dec := json.NewDecoder(r)
	if options.UseNumber {
		dec.UseNumber()
	}

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.WrapDet(err, ErrUnmarshal)
	}
	doc, err := documentFrom(raw, options)
	if err != nil {
		return nil, err
	}
	logger.Debug3f("Decoded document with: %d included resources", len(doc.Included))
	return doc, nil
}

// Encode writes the JSON encoding of 'v' into the writer 'w'.
func Encode(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return errors.WrapDet(err, ErrMarshal)
	}
	return nil
}
