package docbuilder

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	errDoctype  = errors.New("DOCTYPE is disallowed when the secure processing feature is enabled")
	errNoRoot   = errors.New("Premature end of file.")
	errTwoRoots = errors.New("The markup in the document following the root element must be well-formed.")
)

// parse reads raw into a document. DTDs are rejected outright and entity
// references other than the predefined ones are syntax errors, so nothing
// outside the input is ever resolved.
func parse(raw []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{CharsetReader: charsetReader}
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, err
	}
	if hasDirective(&doc.Element) {
		return nil, errDoctype
	}
	roots := 0
	for _, tok := range doc.Child {
		if _, ok := tok.(*etree.Element); ok {
			roots++
		}
	}
	switch {
	case roots == 0:
		return nil, errNoRoot
	case roots > 1:
		return nil, errTwoRoots
	}
	return doc, nil
}

func hasDirective(el *etree.Element) bool {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Directive:
			return true
		case *etree.Element:
			if hasDirective(t) {
				return true
			}
		}
	}
	return false
}

// charsetReader decodes documents declaring a non-UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// degradedText decodes raw as UTF-8, dropping a byte order mark and
// replacing invalid sequences. It never fails.
func degradedText(raw []byte) string {
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(text)
}
