package includes

import (
	"io"

	"github.com/neuronlabs/includes/codec"
	"github.com/neuronlabs/includes/config"
	"github.com/neuronlabs/includes/resolver"
)

var defaultResolver = resolver.New()

// Default gets the default resolver.
func Default() *resolver.Resolver {
	return defaultResolver
}

// SetDefault sets the default resolver. Nil 'r' restores the resolver with the default options.
// It should be called before any of the resolving functions.
func SetDefault(r *resolver.Resolver) {
	if r == nil {
		r = resolver.New()
	}
	defaultResolver = r
}

// New creates new resolver based on the provided config. Nil config uses the default config.
func New(cfg *config.Config) (*resolver.Resolver, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return resolver.NewFromConfig(cfg.Resolver)
}

// Resolve resolves the 'data' with the 'included' resources using the default resolver.
// The 'included' might be a resource slice or a parsed JSON sequence, non resource elements are skipped.
func Resolve(data interface{}, included interface{}) interface{} {
	return defaultResolver.Resolve(data, codec.ResourcesFrom(included))
}

// ResolveDocument resolves the primary data of the 'doc' with its included resources using the default resolver.
func ResolveDocument(doc *codec.Document) *codec.Document {
	return defaultResolver.ResolveDocument(doc)
}

// GetRelated gets the object related to the 'resource' by the relationship 'name'.
// Returns nil if the 'resource' is not resource shaped.
func GetRelated(resource interface{}, name string, included interface{}) resolver.Object {
	res, ok := codec.ResourceFrom(resource)
	if !ok {
		return nil
	}
	return defaultResolver.Related(res, name, codec.ResourcesFrom(included))
}

// GetRelatedList gets all objects related to the 'resource' by the relationship 'name'.
// The result is never nil.
func GetRelatedList(resource interface{}, name string, included interface{}) []resolver.Object {
	res, ok := codec.ResourceFrom(resource)
	if !ok {
		return []resolver.Object{}
	}
	return defaultResolver.RelatedList(res, name, codec.ResourcesFrom(included))
}

// DecodeAndResolve decodes the JSON:API document from the reader 'r' and resolves its primary data.
func DecodeAndResolve(r io.Reader, options *codec.UnmarshalOptions) (*codec.Document, error) {
	doc, err := codec.Decode(r, options)
	if err != nil {
		return nil, err
	}
	return defaultResolver.ResolveDocument(doc), nil
}
