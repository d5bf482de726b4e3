package namespaces

import "fmt"

// Element is a known root element, used to assert which kind of document
// was parsed.
type Element struct {
	Namespace Entry
	LocalName string
	// Name is a human-readable label.
	Name string
}

// Known root elements.
var (
	ManifestV5Root = Element{ManifestV5, "manifest", "Discovery Manifest (v5)"}
	ManifestV6Root = Element{ManifestV6, "manifest", "Discovery Manifest (v6)"}
	CatalogueRoot  = Element{Registry, "catalogue", "Registry Catalogue"}
	ErrorResponse  = Element{CommonTypes, "error-response", "EWP error response"}
)

var elements = []Element{ManifestV5Root, ManifestV6Root, CatalogueRoot, ErrorResponse}

// Elements returns all known root elements.
func Elements() []Element {
	out := make([]Element, len(elements))
	copy(out, elements)
	return out
}

// FindElement looks up a known root element by namespace URI and local name.
func FindElement(uri, localName string) (Element, bool) {
	for _, e := range elements {
		if e.Namespace.URI == uri && e.LocalName == localName {
			return e, true
		}
	}
	return Element{}, false
}

// Matches reports whether the given root element is e.
func (e Element) Matches(uri, localName string) bool {
	return e.Namespace.URI == uri && e.LocalName == localName
}

func (e Element) String() string {
	return fmt.Sprintf("{%s}%s", e.Namespace.URI, e.LocalName)
}

// IsManifest reports whether the root is a discovery manifest of any
// supported generation.
func IsManifest(uri, localName string) bool {
	return ManifestV5Root.Matches(uri, localName) || ManifestV6Root.Matches(uri, localName)
}
