// Package config contains the configuration for the resolver and the logger.
package config

import (
	"strings"

	"gopkg.in/go-playground/validator.v9"

	"github.com/neuronlabs/includes/errors"
)

var (
	// ErrConfig is the root error classification for the config package.
	ErrConfig = errors.New("config")
	// ErrRead is the error classification for failures on reading the config.
	ErrRead = errors.Wrap(ErrConfig, "read")
	// ErrInvalid is the error classification for invalid config values.
	ErrInvalid = errors.Wrap(ErrConfig, "invalid")
)

var validate = validator.New()

// Config contains general configurations for the includes packages.
type Config struct {
	// Resolver defines the configuration for the resolver.
	Resolver *Resolver `mapstructure:"resolver" validate:"required"`

	// LogLevel is the current logging level. An empty level doesn't enable the logger.
	LogLevel string `mapstructure:"log_level" validate:"isdefault|oneof=debug3 debug2 debug info warning error critical"`
}

// Resolver defines the configuration for the Resolver.
type Resolver struct {
	// MissPolicy defines what to do with the references not found in the included resources.
	// Allowed values:
	// - default - each operation uses its own fallback
	// - identifier - keep the bare {type, id} identifier
	// - null - replace the reference with null
	// - drop - remove the reference
	MissPolicy string `mapstructure:"miss_policy" validate:"isdefault|oneof=default identifier null drop"`

	// MaxDepth is the maximum nesting level of the resolved related objects. Zero means no limit.
	MaxDepth int `mapstructure:"max_depth" validate:"min=0"`

	// RequireIncluded skips the relationship keys when the document has no included resources.
	RequireIncluded bool `mapstructure:"require_included"`

	// NamingConvention is the naming convention used for the flattened attribute and relationship keys.
	// Allowed values:
	// - camel
	// - lowercamel
	// - snake
	// - kebab
	NamingConvention string `mapstructure:"naming_convention" validate:"isdefault|oneof=camel lowercamel snake kebab"`

	// StrictUnmarshal is the flag that defines if the documents should be decoded in a strict mode.
	StrictUnmarshal bool `mapstructure:"strict_unmarshal"`

	// UseNumber decodes the document numbers as json.Number.
	UseNumber bool `mapstructure:"use_number"`
}

// Validate validates the config values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.WrapDet(err, ErrInvalid)
	}

	fields := make([]string, len(validationErrors))
	for i, fieldErr := range validationErrors {
		fields[i] = fieldErr.Namespace() + ": '" + fieldErr.Tag() + "'"
	}
	return errors.NewDetf(ErrInvalid, "invalid config fields: %s", strings.Join(fields, ", "))
}
