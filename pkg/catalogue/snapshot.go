package catalogue

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/beevik/etree"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/docbuilder"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/manifest"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
)

// ErrInvalidCatalogue is returned when a catalogue document cannot be used.
var ErrInvalidCatalogue = errors.New("invalid catalogue")

type apiClass struct {
	namespace string
	local     string
}

type host struct {
	heis       []string
	serverKeys []*rsa.PublicKey
}

// Snapshot is an immutable, in-memory catalogue.
type Snapshot struct {
	hosts         []host
	apis          map[apiClass][]APIEntry
	clientKeyHEIs map[string][]string
}

var _ Query = (*Snapshot)(nil)

// Empty returns a snapshot with nothing registered.
func Empty() *Snapshot {
	return &Snapshot{
		apis:          map[apiClass][]APIEntry{},
		clientKeyHEIs: map[string][]string{},
	}
}

// Load builds raw as a registry catalogue and indexes it.
func Load(b *docbuilder.Builder, raw []byte) (*Snapshot, error) {
	out := b.Build(docbuilder.BuildInput{Raw: raw}.Expecting(namespaces.CatalogueRoot))
	if !out.Valid {
		msgs := make([]string, len(out.Errors))
		for i, e := range out.Errors {
			msgs[i] = e.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalogue, strings.Join(msgs, "; "))
	}
	return FromDocument(out.Document)
}

// LoadFile is Load for a file on disk.
func LoadFile(b *docbuilder.Builder, path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue: %w", err)
	}
	return Load(b, raw)
}

// FromDocument indexes an already validated catalogue document. Key
// references are resolved against the document's binaries section and
// every binary must match its declared fingerprint.
func FromDocument(doc *etree.Document) (*Snapshot, error) {
	root := doc.Root()
	if root == nil || !namespaces.CatalogueRoot.Matches(root.NamespaceURI(), root.Tag) {
		return nil, fmt.Errorf("%w: root element is not %s", ErrInvalidCatalogue, namespaces.CatalogueRoot)
	}
	ns := namespaces.Registry.URI

	keys := make(map[string]*rsa.PublicKey)
	for _, bin := range manifest.Children(manifest.Child(root, ns, "binaries"), ns, "rsa-public-key") {
		declared := bin.SelectAttrValue("sha-256", "")
		pub, err := manifest.ParseRSAPublicKey(bin.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: binary %s: %v", ErrInvalidCatalogue, declared, err)
		}
		if got := manifest.Fingerprint(pub); got != declared {
			return nil, fmt.Errorf("%w: binary declared as %s has fingerprint %s", ErrInvalidCatalogue, declared, got)
		}
		keys[declared] = pub
	}

	s := Empty()
	for i, el := range manifest.Children(root, ns, "host") {
		h := host{}
		for _, id := range manifest.Children(manifest.Child(el, ns, "institutions-covered"), ns, "hei-id") {
			h.heis = append(h.heis, strings.TrimSpace(id.Text()))
		}
		for _, ref := range keyRefs(el, "client-credentials-in-use") {
			if _, ok := keys[ref]; !ok {
				return nil, fmt.Errorf("%w: host %d refers to unknown client key %s", ErrInvalidCatalogue, i+1, ref)
			}
			s.clientKeyHEIs[ref] = mergeSorted(s.clientKeyHEIs[ref], h.heis)
		}
		for _, ref := range keyRefs(el, "server-credentials-in-use") {
			pub, ok := keys[ref]
			if !ok {
				return nil, fmt.Errorf("%w: host %d refers to unknown server key %s", ErrInvalidCatalogue, i+1, ref)
			}
			h.serverKeys = append(h.serverKeys, pub)
		}
		for _, api := range manifest.APIEntries(el) {
			version, _ := manifest.Version(api)
			entry := APIEntry{
				Namespace: api.NamespaceURI(),
				LocalName: api.Tag,
				Version:   version,
				URL:       manifest.EntryURL(api),
				HEIs:      h.heis,
				host:      i + 1,
			}
			class := apiClass{entry.Namespace, entry.LocalName}
			s.apis[class] = append(s.apis[class], entry)
		}
		s.hosts = append(s.hosts, h)
	}
	return s, nil
}

func keyRefs(host *etree.Element, container string) []string {
	ns := namespaces.Registry.URI
	var refs []string
	for _, el := range manifest.Children(manifest.Child(host, ns, container), ns, "rsa-public-key") {
		refs = append(refs, el.SelectAttrValue("sha-256", ""))
	}
	return refs
}

func mergeSorted(a, b []string) []string {
	out := append(slices.Clone(a), b...)
	slices.Sort(out)
	return slices.Compact(out)
}

// HostCount returns the number of registered hosts.
func (s *Snapshot) HostCount() int {
	return len(s.hosts)
}

func (s *Snapshot) FindAPIs(heiID, namespace, localName string) []APIEntry {
	var out []APIEntry
	for _, api := range s.apis[apiClass{namespace, localName}] {
		if heiID == "" || slices.Contains(api.HEIs, heiID) {
			out = append(out, api)
		}
	}
	return out
}

func (s *Snapshot) HEIsCoveredByClientKey(key *rsa.PublicKey) []string {
	return slices.Clone(s.clientKeyHEIs[manifest.Fingerprint(key)])
}

func (s *Snapshot) ServerKeysCoveringAPI(api APIEntry) []*rsa.PublicKey {
	if api.host < 1 || api.host > len(s.hosts) {
		return nil
	}
	return slices.Clone(s.hosts[api.host-1].serverKeys)
}

func (s *Snapshot) IsInstitutionCoveredByClientKey(heiID string, key *rsa.PublicKey) bool {
	return slices.Contains(s.clientKeyHEIs[manifest.Fingerprint(key)], heiID)
}
