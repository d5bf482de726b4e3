// Package namespaces is the static catalog of XML namespaces recognized by
// the registry. Each entry carries its preferred prefix, the default
// xsi:schemaLocation and whether the namespace is declared on the root of
// the published catalogue.
//
// The table is built once at package initialization and is read-only
// afterwards, so it is safe for concurrent use.
package namespaces

import (
	"fmt"
	"strings"
)

const (
	// FederationPrefix is the common prefix of all namespaces owned by the
	// federation. API entries outside of it are third-party extensions.
	FederationPrefix = "https://github.com/erasmus-without-paper/"

	uriPrefix            = FederationPrefix + "ewp-specs-"
	schemaLocationPrefix = "https://raw.githubusercontent.com/erasmus-without-paper/ewp-specs-"
)

// Entry describes one recognized namespace.
type Entry struct {
	URI            string
	Prefix         string
	SchemaLocation string
	// CatalogueXmlns is true if the namespace is declared on the root
	// element of the published catalogue.
	CatalogueXmlns bool
}

func entry(prefix, uriEnding, schemaLocEnding string, catalogueXmlns bool) Entry {
	if strings.HasPrefix(uriEnding, "ewp-specs-") || strings.HasPrefix(schemaLocEnding, "ewp-specs-") {
		panic("namespaces: drop the 'ewp-specs-' prefix from " + prefix)
	}
	return Entry{
		URI:            uriPrefix + uriEnding,
		Prefix:         prefix,
		SchemaLocation: schemaLocationPrefix + schemaLocEnding,
		CatalogueXmlns: catalogueXmlns,
	}
}

var (
	byURI    map[string]Entry
	byPrefix map[string]Entry
)

func init() {
	var err error
	byURI, byPrefix, err = index(table)
	if err != nil {
		panic(err)
	}
}

// index builds the lookup maps, rejecting duplicate prefixes or URIs.
func index(entries []Entry) (map[string]Entry, map[string]Entry, error) {
	uris := make(map[string]Entry, len(entries))
	prefixes := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if _, dup := prefixes[e.Prefix]; dup {
			return nil, nil, fmt.Errorf("namespace prefix conflict: %s", e.Prefix)
		}
		if _, dup := uris[e.URI]; dup {
			return nil, nil, fmt.Errorf("namespace declared twice: %s", e.URI)
		}
		prefixes[e.Prefix] = e
		uris[e.URI] = e
	}
	return uris, prefixes, nil
}

// All returns a copy of the table in declaration order.
func All() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}

// ByURI finds the entry for a namespace URI.
func ByURI(uri string) (Entry, bool) {
	e, ok := byURI[uri]
	return e, ok
}

// ByPrefix finds the entry for a preferred prefix.
func ByPrefix(prefix string) (Entry, bool) {
	e, ok := byPrefix[prefix]
	return e, ok
}

// PrefixMap returns a prefix to URI map of all entries.
func PrefixMap() map[string]string {
	m := make(map[string]string, len(table))
	for _, e := range table {
		m[e.Prefix] = e.URI
	}
	return m
}

// CatalogueXmlns returns the entries declared on the catalogue root.
func CatalogueXmlns() []Entry {
	var out []Entry
	for _, e := range table {
		if e.CatalogueXmlns {
			out = append(out, e)
		}
	}
	return out
}

// IsFederation reports whether uri belongs to the federation's own namespaces.
func IsFederation(uri string) bool {
	return strings.HasPrefix(uri, FederationPrefix)
}
