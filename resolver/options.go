package resolver

import (
	"strings"

	"github.com/neuronlabs/includes/errors"
	"github.com/neuronlabs/includes/namer"
)

var (
	// ErrResolver is the error classification for the resolver package.
	// The resolving functions never return errors, it is used only by the resolver constructors.
	ErrResolver = errors.New("resolver")
	// ErrInvalidOption is the error classification for invalid resolver options.
	ErrInvalidOption = errors.Wrap(ErrResolver, "invalid option")
)

// MissPolicy defines what is done with a relationship reference that has no match in the included resources.
type MissPolicy int

// Miss policy enumerators.
const (
	// MissDefault uses the default policy of each operation:
	// Resolve keeps the identifier, Related returns nil and RelatedList drops the reference.
	MissDefault MissPolicy = iota
	// MissKeepIdentifier keeps the bare {type, id} identifier Object.
	MissKeepIdentifier
	// MissNull replaces the reference with nil.
	MissNull
	// MissDrop removes the reference. To-one relationship keys are omitted.
	MissDrop
)

var missPolicyNames = map[MissPolicy]string{
	MissDefault:        "default",
	MissKeepIdentifier: "identifier",
	MissNull:           "null",
	MissDrop:           "drop",
}

// String implements fmt.Stringer interface.
func (m MissPolicy) String() string {
	name, ok := missPolicyNames[m]
	if !ok {
		return "unknown"
	}
	return name
}

// ParseMissPolicy parses the miss policy name. An empty name is the MissDefault.
func ParseMissPolicy(name string) (MissPolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return MissDefault, nil
	}
	for policy, policyName := range missPolicyNames {
		if policyName == name {
			return policy, nil
		}
	}
	return MissDefault, errors.NewDetf(ErrInvalidOption, "unknown miss policy: '%s'", name)
}

// Options are the resolver options.
type Options struct {
	// MissPolicy defines the fallback for references not found in the included resources.
	MissPolicy MissPolicy
	// MaxDepth is the maximum nesting level of the resolved related objects. The references deeper
	// than MaxDepth are kept as bare identifiers. Zero means no limit.
	MaxDepth int
	// RequireIncluded skips adding the relationship keys when there are no included resources.
	RequireIncluded bool
	// KeyNamer renames the flattened attribute and relationship keys.
	KeyNamer namer.Namer
}

// Option is the function that sets the resolver options.
type Option func(o *Options)

// WithMissPolicy sets the miss policy for all resolver operations.
func WithMissPolicy(policy MissPolicy) Option {
	return func(o *Options) {
		o.MissPolicy = policy
	}
}

// WithMaxDepth sets the maximum nesting level of the resolved related objects.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		o.MaxDepth = depth
	}
}

// WithRequireIncluded sets the flag that skips the relationship keys when there are no included resources.
func WithRequireIncluded(require bool) Option {
	return func(o *Options) {
		o.RequireIncluded = require
	}
}

// WithKeyNamer sets the namer function used for the flattened attribute and relationship keys.
func WithKeyNamer(n namer.Namer) Option {
	return func(o *Options) {
		o.KeyNamer = n
	}
}
