// Package config provides configuration types and defaults for ewpregistry.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/catalogue"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/source"
)

// EnvPrefix prefixes environment variables overriding config keys, e.g.
// EWPREGISTRY_LOG_LEVEL for log.level.
const EnvPrefix = "EWPREGISTRY"

// Config holds all configuration options for ewpregistry.
type Config struct {
	Federation FederationConfig `mapstructure:"federation"`
	Registry   RegistryConfig   `mapstructure:"registry"`
	Keys       KeysConfig       `mapstructure:"keys"`
	Sources    SourcesConfig    `mapstructure:"sources"`
	Catalogue  CatalogueConfig  `mapstructure:"catalogue"`
	Log        LogConfig        `mapstructure:"log"`
}

// FederationConfig describes the API namespaces owned by the federation.
type FederationConfig struct {
	NamespacePrefix string `mapstructure:"namespace_prefix"`
}

// RegistryConfig describes the Registry Service itself.
type RegistryConfig struct {
	URL string `mapstructure:"url"`
}

// KeysConfig holds the minimum RSA key lengths, in bits.
type KeysConfig struct {
	ClientMinBits int `mapstructure:"client_min_bits"`
	ServerMinBits int `mapstructure:"server_min_bits"`
	TLSMinBits    int `mapstructure:"tls_min_bits"`
}

// SourcesConfig points at the manifest sources file.
type SourcesConfig struct {
	File string `mapstructure:"file"`
}

// CatalogueConfig points at the catalogue snapshot consulted by the
// constraints. Without a file the catalogue is empty.
type CatalogueConfig struct {
	File     string        `mapstructure:"file"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// LogConfig selects the log level and encoding ("console" or "json").
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Defaults returns the configuration of the production federation.
func Defaults() Config {
	set := source.DefaultSettings()
	return Config{
		Federation: FederationConfig{NamespacePrefix: namespaces.FederationPrefix},
		Registry:   RegistryConfig{URL: set.RegistryURL},
		Keys: KeysConfig{
			ClientMinBits: set.ClientMinBits,
			ServerMinBits: set.ServerMinBits,
			TLSMinBits:    set.TLSMinBits,
		},
		Catalogue: CatalogueConfig{CacheTTL: catalogue.DefaultTTL},
		Log:       LogConfig{Level: "info", Format: "console"},
	}
}

// SetDefaults registers Defaults with v, so every key is known to it even
// when no config file sets it.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("federation.namespace_prefix", d.Federation.NamespacePrefix)
	v.SetDefault("registry.url", d.Registry.URL)
	v.SetDefault("keys.client_min_bits", d.Keys.ClientMinBits)
	v.SetDefault("keys.server_min_bits", d.Keys.ServerMinBits)
	v.SetDefault("keys.tls_min_bits", d.Keys.TLSMinBits)
	v.SetDefault("sources.file", d.Sources.File)
	v.SetDefault("catalogue.file", d.Catalogue.File)
	v.SetDefault("catalogue.cache_ttl", d.Catalogue.CacheTTL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// BindEnv makes v read EWPREGISTRY_* environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	if !strings.HasSuffix(c.Federation.NamespacePrefix, "/") {
		errs = append(errs, fmt.Errorf("federation.namespace_prefix: %q must end with a slash", c.Federation.NamespacePrefix))
	}
	if u, err := url.Parse(c.Registry.URL); err != nil || u.Scheme != "https" || u.Host == "" {
		errs = append(errs, fmt.Errorf("registry.url: %q is not an https URL", c.Registry.URL))
	}
	for key, bits := range map[string]int{
		"keys.client_min_bits": c.Keys.ClientMinBits,
		"keys.server_min_bits": c.Keys.ServerMinBits,
		"keys.tls_min_bits":    c.Keys.TLSMinBits,
	} {
		if bits <= 0 {
			errs = append(errs, fmt.Errorf("%s: must be positive, got %d", key, bits))
		}
	}
	if c.Catalogue.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("catalogue.cache_ttl: must not be negative, got %s", c.Catalogue.CacheTTL))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: %q is neither console nor json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Settings returns the constraint inputs described by c.
func (c Config) Settings() source.Settings {
	return source.Settings{
		FederationPrefix: c.Federation.NamespacePrefix,
		RegistryURL:      c.Registry.URL,
		ClientMinBits:    c.Keys.ClientMinBits,
		ServerMinBits:    c.Keys.ServerMinBits,
		TLSMinBits:       c.Keys.TLSMinBits,
	}
}
