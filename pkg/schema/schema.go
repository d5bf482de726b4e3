// Package schema compiles the bundled XSD catalog into one compound schema
// and validates documents against it.
//
// Compilation reads the bundle index, checks that every namespace imported
// by a bundled XSD is itself in the bundle, and loads the XSDs through a
// file system that refuses anything outside the index. A schema that is not
// in the bundle is a configuration defect and fails compilation with
// ErrMissingSchema; nothing is ever fetched over the network.
//
// A compiled Schema is immutable and safe for concurrent use. Each call to
// Validate runs on its own validation session.
package schema

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
	"go.uber.org/zap"
)

// Violation is a single validation problem reported by the validator.
type Violation struct {
	Line    int
	Column  int
	Code    string
	Message string
}

func (v Violation) String() string {
	if v.Code == "" {
		return v.Message
	}
	return v.Code + ": " + v.Message
}

// Schema is a compiled compound schema.
type Schema struct {
	compiled   *xsd.Schema
	namespaces []string
}

// Option configures Compile.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	maxDepth int
}

// WithLogger sets the logger used while compiling.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMaxDepth bounds the element nesting depth of validated documents.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// Compile builds the compound schema from a bundle containing IndexFile
// and the XSDs it lists.
func Compile(bundle fs.FS, opts ...Option) (*Schema, error) {
	o := options{logger: zap.NewNop(), maxDepth: 256}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := ReadIndex(bundle)
	if err != nil {
		return nil, err
	}

	byNamespace := make(map[string]string, len(entries))
	byPath := make(map[string]string, len(entries))
	for _, e := range entries {
		byNamespace[e.Namespace] = e.Path
		byPath[e.Path] = e.Namespace
	}
	for _, e := range entries {
		if _, err := fs.Stat(bundle, e.Path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingSchema, e.Namespace)
		}
		if err := checkReferences(bundle, e.Path, byNamespace, byPath); err != nil {
			return nil, err
		}
	}

	compound, err := compoundSchema(entries)
	if err != nil {
		return nil, fmt.Errorf("rendering compound schema: %w", err)
	}
	fsys := &closedFS{base: bundle, compound: compound, allowed: byPath}

	loadOpts := xsd.NewLoadOptions().
		WithAllowMissingImportLocations(false).
		WithRuntimeOptions(xsd.NewRuntimeOptions().WithInstanceMaxDepth(o.maxDepth))
	compiled, err := xsd.LoadWithOptions(fsys, compoundFile, loadOpts)
	if err != nil {
		return nil, fmt.Errorf("compiling schema bundle: %w", err)
	}

	namespaces := make([]string, len(entries))
	for i, e := range entries {
		namespaces[i] = e.Namespace
	}
	o.logger.Info("compiled compound schema", zap.Int("schemas", len(entries)))
	return &Schema{compiled: compiled, namespaces: namespaces}, nil
}

var defaultSchema = sync.OnceValues(func() (*Schema, error) {
	return Compile(Bundle())
})

// Default returns the schema compiled from the embedded bundle. It is
// compiled on first use and shared afterwards.
func Default() (*Schema, error) {
	return defaultSchema()
}

// Namespaces lists the namespaces covered by the schema, in index order.
func (s *Schema) Namespaces() []string {
	out := make([]string, len(s.namespaces))
	copy(out, s.namespaces)
	return out
}

// Validate checks the document read from r and returns every violation
// found. A nil result means the document is valid.
func (s *Schema) Validate(r io.Reader) []Violation {
	err := s.compiled.Validate(r)
	if err == nil {
		return nil
	}
	list, ok := xsderrors.AsValidations(err)
	if !ok {
		return []Violation{{Line: 1, Message: err.Error()}}
	}
	out := make([]Violation, 0, len(list))
	for _, v := range list {
		msg := v.Message
		if len(v.Expected) > 0 {
			msg = fmt.Sprintf("%s (expected: %s)", msg, strings.Join(v.Expected, ", "))
		}
		out = append(out, Violation{
			Line:    v.Line,
			Column:  v.Column,
			Code:    v.Code,
			Message: msg,
		})
	}
	return out
}

// ValidateBytes is Validate over an in-memory document.
func (s *Schema) ValidateBytes(b []byte) []Violation {
	return s.Validate(bytes.NewReader(b))
}
