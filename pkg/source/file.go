package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the layout of a sources file.
type File struct {
	Sources []ManifestSource `yaml:"sources"`
}

// Registry is an ordered set of manifest sources, unique by location.
type Registry struct {
	sources    []ManifestSource
	byLocation map[string]int
}

// NewRegistry validates sources and indexes them by location.
func NewRegistry(sources ...ManifestSource) (*Registry, error) {
	r := &Registry{byLocation: make(map[string]int, len(sources))}
	for i, s := range sources {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("source %d: %w", i+1, err)
		}
		if _, dup := r.byLocation[s.Location]; dup {
			return nil, fmt.Errorf("source %d: duplicate location %s", i+1, s.Location)
		}
		r.byLocation[s.Location] = len(r.sources)
		r.sources = append(r.sources, s)
	}
	return r, nil
}

// Load reads a sources file. Unknown keys are rejected.
func Load(r io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding sources: %w", err)
	}
	return NewRegistry(f.Sources...)
}

// LoadFile reads the sources file at path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources: %w", err)
	}
	reg, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// All returns the sources in file order.
func (r *Registry) All() []ManifestSource {
	return append([]ManifestSource(nil), r.sources...)
}

// Len returns the number of sources.
func (r *Registry) Len() int { return len(r.sources) }

// Lookup finds the source registered for location.
func (r *Registry) Lookup(location string) (ManifestSource, bool) {
	i, ok := r.byLocation[location]
	if !ok {
		return ManifestSource{}, false
	}
	return r.sources[i], true
}
