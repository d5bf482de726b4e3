// Package manifest provides namespace-aware access to a parsed discovery
// manifest. Both manifest generations (v5 and v6) are handled; lookups
// compare resolved namespace URIs, never prefixes.
//
// Functions returning element slices always return a fresh slice, so
// callers may remove the returned elements while iterating over it.
package manifest

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
)

// Any matches every local name in Children.
const Any = "*"

// Children returns the child elements of el in namespace uri with the given
// local name.
func Children(el *etree.Element, uri, local string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if (local == Any || c.Tag == local) && c.NamespaceURI() == uri {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first match of Children, or nil.
func Child(el *etree.Element, uri, local string) *etree.Element {
	if m := Children(el, uri, local); len(m) > 0 {
		return m[0]
	}
	return nil
}

// Descendants returns all elements below el (depth-first, document order)
// accepted by match.
func Descendants(el *etree.Element, match func(*etree.Element) bool) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if el != nil {
		walk(el)
	}
	return out
}

// Root returns the manifest root element, or nil if doc is not a discovery
// manifest of a supported generation.
func Root(doc *etree.Document) *etree.Element {
	if doc == nil {
		return nil
	}
	root := doc.Root()
	if root == nil || !namespaces.IsManifest(root.NamespaceURI(), root.Tag) {
		return nil
	}
	return root
}

// Hosts returns the host elements of the manifest.
func Hosts(doc *etree.Document) []*etree.Element {
	root := Root(doc)
	if root == nil {
		return nil
	}
	return Children(root, root.NamespaceURI(), "host")
}

// FirstHost returns the first host element, or nil.
func FirstHost(doc *etree.Document) *etree.Element {
	if hosts := Hosts(doc); len(hosts) > 0 {
		return hosts[0]
	}
	return nil
}

// APIsImplemented returns the r:apis-implemented element of host, or nil.
func APIsImplemented(host *etree.Element) *etree.Element {
	return Child(host, namespaces.Registry.URI, "apis-implemented")
}

// APIEntries returns the API entries declared by host.
func APIEntries(host *etree.Element) []*etree.Element {
	apis := APIsImplemented(host)
	if apis == nil {
		return nil
	}
	return apis.ChildElements()
}

// AllAPIEntries returns the API entries of every host, in document order.
func AllAPIEntries(doc *etree.Document) []*etree.Element {
	var out []*etree.Element
	for _, h := range Hosts(doc) {
		out = append(out, APIEntries(h)...)
	}
	return out
}

// CoveredHEIs returns the r:hei elements under the host's
// institutions-covered element.
func CoveredHEIs(host *etree.Element) []*etree.Element {
	ns := host.NamespaceURI()
	return Children(Child(host, ns, "institutions-covered"), namespaces.Registry.URI, "hei")
}

// HEIID returns the id attribute of an r:hei element.
func HEIID(hei *etree.Element) string {
	return hei.SelectAttrValue("id", "")
}

// FirstHEIID returns the id of the first institution covered by the first
// host, or "" if there is none.
func FirstHEIID(doc *etree.Document) string {
	host := FirstHost(doc)
	if host == nil {
		return ""
	}
	if heis := CoveredHEIs(host); len(heis) > 0 {
		return HEIID(heis[0])
	}
	return ""
}

// ClientKeys returns the rsa-public-key elements of client-credentials-in-use
// across all hosts.
func ClientKeys(doc *etree.Document) []*etree.Element {
	return credentials(doc, "client-credentials-in-use", "rsa-public-key")
}

// ServerKeys returns the rsa-public-key elements of server-credentials-in-use
// across all hosts.
func ServerKeys(doc *etree.Document) []*etree.Element {
	return credentials(doc, "server-credentials-in-use", "rsa-public-key")
}

// ClientCertificates returns the TLS client certificates. Only the v5
// generation carries them.
func ClientCertificates(doc *etree.Document) []*etree.Element {
	var out []*etree.Element
	for _, host := range Hosts(doc) {
		if host.NamespaceURI() != namespaces.ManifestV5.URI {
			continue
		}
		out = append(out, Children(Child(host, host.NamespaceURI(), "client-credentials-in-use"),
			host.NamespaceURI(), "certificate")...)
	}
	return out
}

func credentials(doc *etree.Document, container, local string) []*etree.Element {
	var out []*etree.Element
	for _, host := range Hosts(doc) {
		ns := host.NamespaceURI()
		out = append(out, Children(Child(host, ns, container), ns, local)...)
	}
	return out
}

// EntryURL returns the trimmed text of the entry's url or get-url element,
// or "" if neither is present.
func EntryURL(entry *etree.Element) string {
	ns := entry.NamespaceURI()
	for _, c := range entry.ChildElements() {
		if (c.Tag == "url" || c.Tag == "get-url") && c.NamespaceURI() == ns {
			return strings.TrimSpace(c.Text())
		}
	}
	return ""
}

// Version returns the version attribute of an API entry.
func Version(entry *etree.Element) (string, bool) {
	attr := entry.SelectAttr("version")
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// Remove detaches el from its parent. It reports whether el was attached.
func Remove(el *etree.Element) bool {
	parent := el.Parent()
	if parent == nil {
		return false
	}
	return parent.RemoveChild(el) != nil
}

// RemoveAll detaches every element of els and returns how many were removed.
func RemoveAll(els []*etree.Element) int {
	n := 0
	for _, el := range els {
		if Remove(el) {
			n++
		}
	}
	return n
}
