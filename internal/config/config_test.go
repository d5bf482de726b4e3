package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/source"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
	require.Equal(t, source.DefaultSettings(), Defaults().Settings())
}

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	c, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, Defaults(), c)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ewpregistry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
keys:
  client_min_bits: 4096
catalogue:
  file: /var/lib/ewp/catalogue.xml
  cache_ttl: 90s
log:
  format: json
`), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 4096, c.Keys.ClientMinBits)
	require.Equal(t, 2048, c.Keys.ServerMinBits)
	require.Equal(t, 90*time.Second, c.Catalogue.CacheTTL)
	require.Equal(t, "/var/lib/ewp/catalogue.xml", c.Catalogue.File)
	require.Equal(t, "json", c.Log.Format)
	require.Equal(t, 4096, c.Settings().ClientMinBits)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("EWPREGISTRY_KEYS_TLS_MIN_BITS", "2048")
	t.Setenv("EWPREGISTRY_LOG_LEVEL", "debug")

	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	c, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 2048, c.Keys.TLSMinBits)
	require.Equal(t, "debug", c.Log.Level)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"prefix without slash", func(c *Config) { c.Federation.NamespacePrefix = "https://example.org" }, "federation.namespace_prefix"},
		{"http registry", func(c *Config) { c.Registry.URL = "http://registry.example/" }, "registry.url"},
		{"zero client bits", func(c *Config) { c.Keys.ClientMinBits = 0 }, "keys.client_min_bits"},
		{"negative tls bits", func(c *Config) { c.Keys.TLSMinBits = -1 }, "keys.tls_min_bits"},
		{"negative ttl", func(c *Config) { c.Catalogue.CacheTTL = -time.Second }, "catalogue.cache_ttl"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Defaults()
			tc.modify(&c)
			err := c.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	c := Defaults()
	c.Keys.ServerMinBits = 0
	c.Log.Format = ""
	err := c.Validate()
	require.Error(t, err)
	require.Len(t, strings.Split(err.Error(), "\n"), 2)
}
