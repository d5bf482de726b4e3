package schema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/beevik/etree"
)

//go:embed all:resources
var resources embed.FS

// ErrMissingSchema is returned when a schema refers to a namespace or file
// that is not part of the local bundle. Schemas are never fetched remotely.
var ErrMissingSchema = errors.New("missing schema in resources")

// compoundFile is the synthesized root schema which imports every indexed
// namespace.
const compoundFile = "__compound__.xsd"

// Bundle returns the XSD bundle embedded in the binary.
func Bundle() fs.FS {
	sub, err := fs.Sub(resources, "resources")
	if err != nil {
		panic(err)
	}
	return sub
}

// compoundSchema renders a schema document importing all entries.
func compoundSchema(entries []IndexEntry) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("xs:schema")
	root.CreateAttr("xmlns:xs", xsdNamespace)
	for _, e := range entries {
		imp := root.CreateElement("xs:import")
		imp.CreateAttr("namespace", e.Namespace)
		imp.CreateAttr("schemaLocation", e.Path)
	}
	doc.Indent(2)
	return doc.WriteToBytes()
}

// closedFS serves the compound root and the indexed schemas, and refuses
// everything else.
type closedFS struct {
	base     fs.FS
	compound []byte
	allowed  map[string]string
}

func (c *closedFS) Open(name string) (fs.File, error) {
	name = strings.TrimPrefix(name, "./")
	if name == compoundFile {
		return &memFile{name: name, Reader: bytes.NewReader(c.compound), size: int64(len(c.compound))}, nil
	}
	if _, ok := c.allowed[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingSchema, name)
	}
	return c.base.Open(name)
}

type memFile struct {
	*bytes.Reader
	name string
	size int64
}

func (f *memFile) Stat() (fs.FileInfo, error) { return f, nil }
func (f *memFile) Close() error               { return nil }

func (f *memFile) Name() string       { return f.name }
func (f *memFile) Size() int64        { return f.size }
func (f *memFile) Mode() fs.FileMode  { return 0o444 }
func (f *memFile) ModTime() time.Time { return time.Time{} }
func (f *memFile) IsDir() bool        { return false }
func (f *memFile) Sys() any           { return nil }
