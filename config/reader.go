package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/neuronlabs/includes/errors"
	"github.com/neuronlabs/includes/log"
)

// EnvPrefix is the prefix of the environment variables that overrides the config values,
// i.e. JSONAPI_RESOLVE_RESOLVER_MISS_POLICY.
const EnvPrefix = "JSONAPI_RESOLVE"

// ViperSetDefaults sets the default values for the viper config.
func ViperSetDefaults(v *viper.Viper) {
	setDefaults(v)
}

// NewViper creates new viper instance with the default values and the environment variables bound.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadNamedConfig reads the config with the provided name from the working directory or the 'configs' directory.
func ReadNamedConfig(name string) (*Config, error) {
	v := NewViper()
	v.SetConfigName(name)
	v.AddConfigPath(".")
	v.AddConfigPath("configs")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapDet(err, ErrRead).WithDetailf("reading config: '%s' failed", name)
	}
	return ReadViper(v)
}

// ReadConfigFile reads the config from provided file 'path'. The format is taken from the file extension.
func ReadConfigFile(path string) (*Config, error) {
	v := NewViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapDet(err, ErrRead).WithDetailf("reading config file: '%s' failed", path)
	}
	return ReadViper(v)
}

// ReadDefaultConfig reads the default configuration.
func ReadDefaultConfig() *Config {
	c, err := ReadViper(NewViper())
	if err != nil {
		log.Debugf("Reading default config failed: %v", err)
		return DefaultConfig()
	}
	return c
}

// ReadViper unmarshals and validates the config from the viper 'v' instance.
func ReadViper(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		log.Debugf("Unmarshaling Config failed. %v", err)
		return nil, errors.WrapDet(err, ErrRead)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Resolver: &Resolver{MissPolicy: "default"},
	}
}

func setDefaults(v *viper.Viper) {
	keys := map[string]interface{}{
		"log_level":                  "",
		"resolver.miss_policy":       "default",
		"resolver.max_depth":         0,
		"resolver.require_included":  false,
		"resolver.naming_convention": "",
		"resolver.strict_unmarshal":  false,
		"resolver.use_number":        false,
	}

	for k, value := range keys {
		v.SetDefault(k, value)
	}
}
