// Package namer contains the naming conventions used to rename the resolved object keys.
package namer

import (
	"github.com/iancoleman/strcase"

	"github.com/neuronlabs/includes/errors"
)

var (
	// ErrNamer is the error classification for the namer package.
	ErrNamer = errors.New("namer")
	// ErrUnknownConvention is the error classification for unsupported naming conventions.
	ErrUnknownConvention = errors.Wrap(ErrNamer, "unknown convention")
)

// Namer is the function that change the name with some prepared formatting.
type Namer func(string) string

// NamingSnake is a Namer function that converts the 'raw' into the 'snake_case_model'.
func NamingSnake(raw string) string {
	return strcase.ToSnake(raw)
}

// NamingKebab is a Namer function that converts the 'raw' into the 'kebab-case-model'.
func NamingKebab(raw string) string {
	return strcase.ToKebab(raw)
}

// NamingCamel is a Namer function that converts the 'raw' into the 'CamelCaseModel'.
func NamingCamel(raw string) string {
	return strcase.ToCamel(raw)
}

// NamingLowerCamel is a Namer function that converts the 'raw' into the 'camelCaseModel'.
func NamingLowerCamel(raw string) string {
	return strcase.ToLowerCamel(raw)
}

// ForConvention gets the Namer for the naming 'convention' name.
// An empty convention returns nil Namer which keeps the keys unchanged.
// Allowed values:
//	- camel
//	- lowercamel
//	- snake
//	- kebab
func ForConvention(convention string) (Namer, error) {
	switch convention {
	case "":
		return nil, nil
	case "camel":
		return NamingCamel, nil
	case "lowercamel":
		return NamingLowerCamel, nil
	case "snake":
		return NamingSnake, nil
	case "kebab":
		return NamingKebab, nil
	default:
		return nil, errors.NewDetf(ErrUnknownConvention, "naming convention: '%s' is not supported", convention)
	}
}
