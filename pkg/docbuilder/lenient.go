package docbuilder

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/schema"
)

const apisImplemented = "apis-implemented"

// position is a point in the raw input.
type position struct {
	line, column int
}

func (p position) after(q position) bool {
	return p.line > q.line || (p.line == q.line && p.column > q.column)
}

// span is the extent of one API entry in the raw input, from the '<' of its
// start tag to the end of its end tag.
type span struct {
	start, end position
}

// contains reports whether the violation at p lies inside s. A zero column
// matches any column of the line.
func (s span) contains(p position) bool {
	if p.column == 0 {
		return p.line >= s.start.line && p.line <= s.end.line
	}
	return !s.start.after(p) && !p.after(s.end)
}

// BuildManifest builds a discovery manifest leniently. Schema errors located
// inside a child of an apis-implemented element remove that child from the
// returned document; the manifest stays valid and the errors are reported.
// Any other error makes the manifest invalid. Pretty printing is not
// supported here.
func (b *Builder) BuildManifest(in BuildInput) BuildOutput {
	doc, err := parse(in.Raw)
	if err != nil {
		return BuildOutput{Errors: []BuildError{{Line: 1, Message: err.Error()}}}
	}
	out := BuildOutput{
		Document:      doc,
		RootNamespace: doc.Root().NamespaceURI(),
		RootLocalName: doc.Root().Tag,
	}

	violations := b.schema.ValidateBytes(in.Raw)
	rootErrs := rootErrors(in, out.RootNamespace, out.RootLocalName)
	if len(violations) == 0 && len(rootErrs) == 0 {
		out.Valid = true
		return out
	}

	spans, err := entrySpans(in.Raw)
	if err != nil {
		// The etree parse succeeded, so this only happens on charset
		// differences between the two readers. Treat it as strict.
		b.logger.Warn("locating API entries failed", zap.Error(err))
		spans = nil
	}

	invalid := make(map[int]bool)
	var entryErrs, otherErrs []BuildError
	for _, v := range violations {
		idx := owningEntries(spans, v)
		if len(idx) == 0 {
			otherErrs = append(otherErrs, violationError(v))
			continue
		}
		for _, i := range idx {
			invalid[i] = true
		}
		entryErrs = append(entryErrs, violationError(v))
	}
	otherErrs = append(otherErrs, rootErrs...)

	if len(otherErrs) > 0 {
		out.Errors = append(entryErrs, otherErrs...)
		return out
	}

	entries := apiEntries(doc.Root())
	if len(entries) != len(spans) {
		// Both walks visit the same elements of the same input.
		b.logger.Error("API entry count mismatch",
			zap.Int("dom", len(entries)), zap.Int("stream", len(spans)))
		out.Errors = entryErrs
		return out
	}
	for i := range invalid {
		entries[i].Parent().RemoveChild(entries[i])
	}
	b.logger.Info("dropped invalid API entries", zap.Int("removed", len(invalid)))
	out.Valid = true
	out.Errors = entryErrs
	return out
}

func owningEntries(spans []span, v schema.Violation) []int {
	p := position{line: v.Line, column: v.Column}
	var idx []int
	for i, s := range spans {
		if s.contains(p) {
			idx = append(idx, i)
		}
	}
	return idx
}

// apiEntries returns the children of every outermost apis-implemented
// element, in document order.
func apiEntries(root *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == apisImplemented {
			out = append(out, el.ChildElements()...)
			return
		}
		for _, c := range el.ChildElements() {
			walk(c)
		}
	}
	walk(root)
	return out
}

// entrySpans streams raw and returns the span of every element returned by
// apiEntries, in the same order.
func entrySpans(raw []byte) ([]span, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charsetReader

	var (
		spans   []span
		depth   int
		apisAt  = -1
		current = -1
	)
	for {
		line, col := dec.InputPos()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return spans, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if apisAt >= 0 && depth == apisAt+1 {
				current = len(spans)
				spans = append(spans, span{start: position{line, col}})
			}
			if apisAt < 0 && t.Name.Local == apisImplemented {
				apisAt = depth
			}
			depth++
		case xml.EndElement:
			depth--
			if current >= 0 && depth == apisAt+1 {
				l, c := dec.InputPos()
				spans[current].end = position{l, c}
				current = -1
			}
			if depth == apisAt {
				apisAt = -1
			}
		}
	}
}
