// Package source describes where manifests come from and which constraints
// apply to each of them.
//
// A regular source runs the full constraint chain, optionally restricted
// to the institutions matching its HEI pattern. A trusted source (the
// Registry's own manifest, for example) runs no constraints at all.
package source

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"go.uber.org/zap"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/constraints"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
)

// ErrInvalidLocation is returned for source locations which are not
// absolute HTTPS URLs.
var ErrInvalidLocation = errors.New("manifest source location must be an absolute https URL")

// ManifestSource is a single manifest location known to the Registry.
type ManifestSource struct {
	Location string `yaml:"location"`
	HEIRegex string `yaml:"hei_regex,omitempty"`
	Trusted  bool   `yaml:"trusted,omitempty"`
}

// NewRegular returns a source whose manifests are checked by the full
// chain. heiRegex may be empty.
func NewRegular(location, heiRegex string) (ManifestSource, error) {
	s := ManifestSource{Location: location, HEIRegex: heiRegex}
	return s, s.Validate()
}

// NewTrusted returns a source whose manifests are imported unchecked.
func NewTrusted(location string) (ManifestSource, error) {
	s := ManifestSource{Location: location, Trusted: true}
	return s, s.Validate()
}

// Validate checks the location and the HEI pattern.
func (s ManifestSource) Validate() error {
	u, err := url.Parse(s.Location)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidLocation, s.Location)
	}
	if s.Trusted && s.HEIRegex != "" {
		return fmt.Errorf("source %s: trusted sources cannot restrict institutions", s.Location)
	}
	if s.HEIRegex != "" {
		if _, err := regexp.Compile(s.HEIRegex); err != nil {
			return fmt.Errorf("source %s: invalid hei_regex: %w", s.Location, err)
		}
	}
	return nil
}

func (s ManifestSource) String() string {
	switch {
	case s.Trusted:
		return s.Location + " (trusted)"
	case s.HEIRegex != "":
		return fmt.Sprintf("%s (hei_regex %s)", s.Location, s.HEIRegex)
	}
	return s.Location
}

// Settings are the deployment-wide inputs of the constraints.
type Settings struct {
	FederationPrefix string
	RegistryURL      string
	ClientMinBits    int
	ServerMinBits    int
	TLSMinBits       int
}

// DefaultSettings returns the settings of the production federation.
func DefaultSettings() Settings {
	return Settings{
		FederationPrefix: namespaces.FederationPrefix,
		RegistryURL:      "https://registry.erasmuswithoutpaper.eu/",
		ClientMinBits:    2048,
		ServerMinBits:    2048,
		TLSMinBits:       1024,
	}
}

// Constraints returns the rules applied to manifests fetched from s, in
// the order they run. Trusted sources get none.
func (s ManifestSource) Constraints(set Settings) ([]constraints.Constraint, error) {
	if s.Trusted {
		return nil, nil
	}
	cs := []constraints.Constraint{constraints.SingleHost()}
	if s.HEIRegex != "" {
		restrict, err := constraints.RestrictInstitutionsCovered(s.HEIRegex)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", s.Location, err)
		}
		cs = append(cs, restrict)
	}
	cs = append(cs,
		constraints.SingleHEI(),
		constraints.TLSClientCertificate(set.TLSMinBits),
		constraints.ClientKey(set.ClientMinBits),
		constraints.ServerKey(set.ServerMinBits),
		constraints.ForbidRegistryImplementations(set.FederationPrefix, set.RegistryURL),
		constraints.EndpointURLCorrect(),
		constraints.APIUnique(set.FederationPrefix),
		constraints.EndpointUnique(set.FederationPrefix),
		constraints.VerifyDiscoveryAPIEntry(set.FederationPrefix, s.Location),
		constraints.VerifyAPIVersions(set.FederationPrefix),
		constraints.RemoveEmbeddedCatalogues(),
	)
	return cs, nil
}

// Chain wraps Constraints into a chain logging through logger.
func (s ManifestSource) Chain(set Settings, logger *zap.Logger) (*constraints.Chain, error) {
	cs, err := s.Constraints(set)
	if err != nil {
		return nil, err
	}
	chain := constraints.NewChain(cs...)
	if logger != nil {
		chain.Logger = logger.With(zap.String("source", s.Location))
	}
	return chain, nil
}
