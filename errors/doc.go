// Package errors provides lightweight error handling and classification primitives.
//
// Each package defines its own classification tree with the New and Wrap functions, i.e.:
//
//	ErrCodec = errors.New("codec")
//	ErrUnmarshal = errors.Wrap(ErrCodec, "unmarshal")
//
// Any error created from the classification matches all of its ancestors with the Is function.
// The DetailedError additionally stores unique instance ID, details and the operation
// where it was created.
package errors
