package constraints

import (
	"crypto/rsa"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/catalogue"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/docbuilder"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/report"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/schema"
)

// tb is satisfied by both *testing.T and *rapid.T.
type tb interface {
	Helper()
	Fatal(args ...any)
	Errorf(format string, args ...any)
	FailNow()
}

const (
	fetchURL    = "https://uw.example.edu/ewp/manifest.xml"
	registryURL = "https://registry.erasmuswithoutpaper.eu/"
)

func testdataDir(t tb) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "testdata")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find repository root")
		}
		dir = parent
	}
}

func loadManifest(t tb, name string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(filepath.Join(testdataDir(t), "manifests", name)))
	return doc
}

func keyText(t tb, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(testdataDir(t), "keys", name+".b64"))
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

var (
	snapshotOnce sync.Once
	snapshot     *catalogue.Snapshot
	snapshotErr  error
)

// testCatalogue returns the catalogue fixture, loaded once per test binary.
func testCatalogue(t tb) *catalogue.Snapshot {
	t.Helper()
	snapshotOnce.Do(func() {
		var s *schema.Schema
		s, snapshotErr = schema.Default()
		if snapshotErr != nil {
			return
		}
		snapshot, snapshotErr = catalogue.LoadFile(docbuilder.New(s),
			filepath.Join(testdataDir(t), "catalogue", "catalogue.xml"))
	})
	require.NoError(t, snapshotErr)
	return snapshot
}

// fullChain returns every rule in the order a regular manifest source uses.
func fullChain(t testing.TB, heiPattern string) *Chain {
	t.Helper()
	prefix := namespaces.FederationPrefix
	cs := []Constraint{SingleHost()}
	if heiPattern != "" {
		restrict, err := RestrictInstitutionsCovered(heiPattern)
		require.NoError(t, err)
		cs = append(cs, restrict)
	}
	cs = append(cs,
		SingleHEI(),
		TLSClientCertificate(1024),
		ClientKey(2048),
		ServerKey(2048),
		ForbidRegistryImplementations(namespaces.FederationPrefix, registryURL),
		EndpointURLCorrect(),
		APIUnique(prefix),
		EndpointUnique(prefix),
		VerifyDiscoveryAPIEntry(namespaces.FederationPrefix, fetchURL),
		VerifyAPIVersions(prefix),
		RemoveEmbeddedCatalogues(),
	)
	return NewChain(cs...)
}

func serialize(t tb, doc *etree.Document) string {
	t.Helper()
	s, err := doc.WriteToString()
	require.NoError(t, err)
	return s
}

func withSeverity(msgs []report.Message, sev report.Severity) []report.Message {
	var out []report.Message
	for _, m := range msgs {
		if m.Severity == sev {
			out = append(out, m)
		}
	}
	return out
}

// conflictingQuery reports a conflicting registration for every API it is
// asked about and records the namespaces it was asked about.
type conflictingQuery struct {
	mu    sync.Mutex
	asked []string
}

func (q *conflictingQuery) FindAPIs(heiID, namespace, localName string) []catalogue.APIEntry {
	q.mu.Lock()
	q.asked = append(q.asked, namespace)
	q.mu.Unlock()
	return []catalogue.APIEntry{{Namespace: namespace, LocalName: localName, URL: "https://elsewhere.example/"}}
}

func (q *conflictingQuery) HEIsCoveredByClientKey(*rsa.PublicKey) []string { return nil }

func (q *conflictingQuery) ServerKeysCoveringAPI(catalogue.APIEntry) []*rsa.PublicKey { return nil }

func (q *conflictingQuery) IsInstitutionCoveredByClientKey(string, *rsa.PublicKey) bool { return false }

// sharedKeyQuery reports every client key as registered for heis.
type sharedKeyQuery struct {
	catalogue.Query
	heis []string
}

func (q sharedKeyQuery) HEIsCoveredByClientKey(*rsa.PublicKey) []string { return q.heis }
