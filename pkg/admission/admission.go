// Package admission runs a fetched manifest through the whole admission
// pipeline:
//
//  1. Build the document leniently, dropping API entries the schema rejects
//  2. Apply the constraint chain of the manifest's source
//  3. Re-validate the document left by the constraints
//
// A Result keeps the build output before and after the constraints along
// with every notice raised on the way, so callers can show manifest admins
// exactly what was removed and why.
package admission

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/catalogue"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/docbuilder"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/report"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/source"
)

// Check IDs of the messages describing build problems.
const (
	CheckNotWellFormed = "BLD-001"
	CheckSchema        = "BLD-002"
	CheckEntryDropped  = "BLD-003"
	CheckRevalidation  = "BLD-004"
)

// ErrUnknownSource is returned by AdmitFrom for locations missing from the
// sources registry.
var ErrUnknownSource = errors.New("unknown manifest source")

// Result is the outcome of one admission run.
type Result struct {
	ID     uuid.UUID
	Source source.ManifestSource

	// Before is the lenient build of the fetched bytes. Its Document is the
	// tree the constraints mutated.
	Before docbuilder.BuildOutput

	// Notices are the build and constraint messages in the order they were
	// raised.
	Notices []report.Message

	// After is a pretty-printed rebuild of the document left by the
	// constraints. It is zero when the manifest was rejected before the
	// constraints could run.
	After docbuilder.BuildOutput

	Worst report.Severity
}

// Admitted reports whether anything of the manifest can be imported.
func (r *Result) Admitted() bool {
	return r.Before.Valid && r.After.Valid
}

// Report returns the notices as a report.
func (r *Result) Report() *report.Report {
	rep := report.NewReport()
	rep.Append(r.Notices...)
	return rep
}

// Pipeline admits manifests. It is safe for concurrent use as long as the
// catalogue is.
type Pipeline struct {
	builder   *docbuilder.Builder
	catalogue catalogue.Query
	sources   *source.Registry
	settings  source.Settings
	logger    *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCatalogue sets the catalogue consulted by the constraints.
func WithCatalogue(q catalogue.Query) Option {
	return func(p *Pipeline) { p.catalogue = q }
}

// WithSources sets the registry used by AdmitFrom.
func WithSources(r *source.Registry) Option {
	return func(p *Pipeline) { p.sources = r }
}

// WithSettings overrides source.DefaultSettings.
func WithSettings(s source.Settings) Option {
	return func(p *Pipeline) { p.settings = s }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New returns a pipeline building documents with b.
func New(b *docbuilder.Builder, opts ...Option) *Pipeline {
	p := &Pipeline{
		builder:   b,
		catalogue: catalogue.Empty(),
		settings:  source.DefaultSettings(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sources == nil {
		p.sources, _ = source.NewRegistry()
	}
	return p
}

// AdmitFrom admits raw as fetched from location, which must be a
// registered source.
func (p *Pipeline) AdmitFrom(location string, raw []byte) (*Result, error) {
	src, ok := p.sources.Lookup(location)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, location)
	}
	return p.Admit(src, raw)
}

// Admit runs raw through the pipeline for src. The returned error is
// reserved for configuration problems; any content problem ends up in the
// result's notices.
func (p *Pipeline) Admit(src source.ManifestSource, raw []byte) (*Result, error) {
	chain, err := src.Chain(p.settings, p.logger)
	if err != nil {
		return nil, err
	}

	res := &Result{ID: uuid.New(), Source: src}
	logger := p.logger.With(zap.Stringer("run", res.ID), zap.String("source", src.Location))

	res.Before = p.builder.BuildManifest(docbuilder.BuildInput{Raw: raw})
	res.Notices = buildNotices(res.Before)
	if res.Before.Valid && !namespaces.IsManifest(res.Before.RootNamespace, res.Before.RootLocalName) {
		res.Before.Valid = false
		res.Notices = append(res.Notices, report.Message{
			Severity: report.Error,
			CheckID:  CheckSchema,
			Message: fmt.Sprintf("Expecting a discovery manifest, but found %s instead.",
				report.EscapeHTML(elementName(res.Before))),
			Location: "line 1",
		})
	}
	if !res.Before.Valid {
		res.Worst = report.Worst(res.Notices)
		logger.Info("manifest rejected",
			zap.Bool("parsed", res.Before.Parsed()),
			zap.Int("errors", len(res.Before.Errors)))
		return res, nil
	}

	res.Notices = append(res.Notices, chain.Apply(res.Before.Document, p.catalogue)...)

	res.After, err = p.rebuild(res.Before)
	if err != nil {
		return nil, err
	}
	for _, e := range res.After.Errors {
		res.Notices = append(res.Notices, report.Message{
			Severity: report.Error,
			CheckID:  CheckRevalidation,
			Message:  "The manifest is not valid after applying constraints: " + report.EscapeHTML(e.Message),
			Location: fmt.Sprintf("line %d", e.Line),
		})
	}
	res.Worst = report.Worst(res.Notices)

	logger.Info("manifest admitted",
		zap.Int("constraints", len(chain.Constraints)),
		zap.Int("notices", len(res.Notices)),
		zap.Stringer("worst", res.Worst),
		zap.Bool("valid", res.After.Valid))
	return res, nil
}

// rebuild serializes the constrained document and builds it again,
// pretty-printed, expecting the same root.
func (p *Pipeline) rebuild(before docbuilder.BuildOutput) (docbuilder.BuildOutput, error) {
	data, err := before.Document.WriteToBytes()
	if err != nil {
		return docbuilder.BuildOutput{}, fmt.Errorf("serializing constrained manifest: %w", err)
	}
	return p.builder.Build(docbuilder.BuildInput{
		Raw:               data,
		MakePretty:        true,
		ExpectedNamespace: before.RootNamespace,
		ExpectedLocalName: before.RootLocalName,
	}), nil
}

func buildNotices(out docbuilder.BuildOutput) []report.Message {
	var id string
	switch {
	case !out.Parsed():
		id = CheckNotWellFormed
	case !out.Valid:
		id = CheckSchema
	default:
		id = CheckEntryDropped
	}
	msgs := make([]report.Message, 0, len(out.Errors))
	for _, e := range out.Errors {
		text := report.EscapeHTML(e.Message)
		if id == CheckEntryDropped {
			text = "Invalid API entry. It will not be imported: " + text
		}
		msgs = append(msgs, report.Message{
			Severity: report.Error,
			CheckID:  id,
			Message:  text,
			Location: fmt.Sprintf("line %d", e.Line),
		})
	}
	return msgs
}

func elementName(out docbuilder.BuildOutput) string {
	if out.RootNamespace == "" {
		return fmt.Sprintf("%q element", out.RootLocalName)
	}
	return fmt.Sprintf("{%s}%s", out.RootNamespace, out.RootLocalName)
}
