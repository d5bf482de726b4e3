package schema

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/beevik/etree"
)

// IndexFile is the name of the bundle index, an OASIS XML catalog with one
// <uri name="namespace" uri="relative/path.xsd"/> entry per namespace.
const IndexFile = "__index__.xml"

const xsdNamespace = "http://www.w3.org/2001/XMLSchema"

// IndexEntry maps a namespace to the bundled XSD that defines it.
type IndexEntry struct {
	Namespace string
	Path      string
}

// ReadIndex parses the bundle index.
func ReadIndex(bundle fs.FS) ([]IndexEntry, error) {
	data, err := fs.ReadFile(bundle, IndexFile)
	if err != nil {
		return nil, fmt.Errorf("reading schema index: %w", err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing schema index: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "catalog" {
		return nil, fmt.Errorf("parsing schema index: root element must be <catalog>")
	}

	var entries []IndexEntry
	seen := make(map[string]bool)
	for _, el := range root.SelectElements("uri") {
		ns := el.SelectAttrValue("name", "")
		loc := el.SelectAttrValue("uri", "")
		if ns == "" || loc == "" {
			return nil, fmt.Errorf("schema index: <uri> entry needs both name and uri attributes")
		}
		if !fs.ValidPath(loc) || path.IsAbs(loc) {
			return nil, fmt.Errorf("schema index: %s must be a relative path inside the bundle", loc)
		}
		if seen[ns] {
			return nil, fmt.Errorf("schema index: namespace listed twice: %s", ns)
		}
		seen[ns] = true
		entries = append(entries, IndexEntry{Namespace: ns, Path: loc})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("schema index lists no schemas")
	}
	return entries, nil
}

// checkReferences verifies that every xs:import and xs:include of the XSD
// at p points at a schema present in the index.
func checkReferences(bundle fs.FS, p string, byNamespace map[string]string, byPath map[string]string) error {
	data, err := fs.ReadFile(bundle, p)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMissingSchema, byPath[p])
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("parsing %s: %w", p, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "schema" || root.NamespaceURI() != xsdNamespace {
		return fmt.Errorf("%s is not an XML Schema document", p)
	}
	dir := path.Dir(p)
	for _, imp := range root.ChildElements() {
		if imp.NamespaceURI() != xsdNamespace {
			continue
		}
		switch imp.Tag {
		case "import":
			ns := imp.SelectAttrValue("namespace", "")
			want, ok := byNamespace[ns]
			if !ok {
				return fmt.Errorf("%w: %s (imported by %s)", ErrMissingSchema, ns, p)
			}
			loc := imp.SelectAttrValue("schemaLocation", "")
			if loc == "" || path.Join(dir, loc) != want {
				return fmt.Errorf("%s imports %s from %q, but the index maps it to %s", p, ns, loc, want)
			}
		case "include", "redefine", "override":
			loc := path.Join(dir, imp.SelectAttrValue("schemaLocation", ""))
			if _, ok := byPath[loc]; !ok {
				return fmt.Errorf("%w: %s (included by %s)", ErrMissingSchema, loc, p)
			}
		}
	}
	return nil
}
