package catalogue

import (
	"crypto/rsa"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/docbuilder"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/manifest"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/schema"
)

func testdataDir(t *testing.T) string {
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

func newBuilder(t *testing.T) *docbuilder.Builder {
	t.Helper()
	s, err := schema.Default()
	require.NoError(t, err)
	return docbuilder.New(s)
}

func loadSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	s, err := LoadFile(newBuilder(t), filepath.Join(testdataDir(t), "catalogue", "catalogue.xml"))
	require.NoError(t, err)
	return s
}

func key(t *testing.T, name string) *rsa.PublicKey {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(testdataDir(t), "keys", name+".b64"))
	require.NoError(t, err)
	pub, err := manifest.ParseRSAPublicKey(string(data))
	require.NoError(t, err)
	return pub
}

func TestSnapshotFindAPIs(t *testing.T) {
	s := loadSnapshot(t)
	assert.Equal(t, 2, s.HostCount())

	ns, local := namespaces.InstitutionsEntryV2.URI, "institutions"
	apis := s.FindAPIs("uw.edu.pl", ns, local)
	require.Len(t, apis, 1)
	assert.Equal(t, "https://b.example/institutions", apis[0].URL)
	assert.Equal(t, "2.1.0", apis[0].Version)
	assert.Equal(t, []string{"uw.edu.pl"}, apis[0].HEIs)

	assert.Len(t, s.FindAPIs("", ns, local), 2)
	assert.Empty(t, s.FindAPIs("unknown.edu", ns, local))
	assert.Empty(t, s.FindAPIs("uw.edu.pl", ns, "factsheet"))
}

func TestSnapshotKeys(t *testing.T) {
	s := loadSnapshot(t)

	assert.Equal(t, []string{"uw.edu.pl"}, s.HEIsCoveredByClientKey(key(t, "client-2048")))
	assert.Equal(t, []string{"other.edu"}, s.HEIsCoveredByClientKey(key(t, "client-other-2048")))
	assert.Empty(t, s.HEIsCoveredByClientKey(key(t, "client-1024")))

	assert.True(t, s.IsInstitutionCoveredByClientKey("uw.edu.pl", key(t, "client-2048")))
	assert.False(t, s.IsInstitutionCoveredByClientKey("other.edu", key(t, "client-2048")))

	other := s.FindAPIs("other.edu", namespaces.InstitutionsEntryV2.URI, "institutions")
	require.Len(t, other, 1)
	serverKeys := s.ServerKeysCoveringAPI(other[0])
	require.Len(t, serverKeys, 1)
	assert.True(t, serverKeys[0].Equal(key(t, "server-other-2048")))

	assert.Empty(t, s.ServerKeysCoveringAPI(APIEntry{URL: "https://other.example/institutions"}),
		"entries not taken from the snapshot have no host")
}

func TestEmptySnapshot(t *testing.T) {
	s := Empty()
	assert.Empty(t, s.FindAPIs("", namespaces.EchoEntryV2.URI, "echo"))
	assert.Empty(t, s.HEIsCoveredByClientKey(key(t, "client-2048")))
	assert.Zero(t, s.HostCount())
}

func TestLoadRejectsBadCatalogues(t *testing.T) {
	b := newBuilder(t)
	raw, err := os.ReadFile(filepath.Join(testdataDir(t), "catalogue", "catalogue.xml"))
	require.NoError(t, err)
	text := string(raw)

	_, err = Load(b, []byte(`<catalogue/>`))
	assert.ErrorIs(t, err, ErrInvalidCatalogue)

	manifestRaw, err := os.ReadFile(filepath.Join(testdataDir(t), "manifests", "valid-v6.xml"))
	require.NoError(t, err)
	_, err = Load(b, manifestRaw)
	assert.ErrorIs(t, err, ErrInvalidCatalogue)

	// A reference to a key missing from binaries.
	fp := manifest.Fingerprint(key(t, "server-other-2048"))
	i := strings.LastIndex(text, `<rsa-public-key sha-256="`+fp+`">`)
	require.Positive(t, i)
	j := i + strings.Index(text[i:], "\n")
	_, err = Load(b, []byte(text[:i]+text[j+1:]))
	assert.ErrorIs(t, err, ErrInvalidCatalogue)
	assert.ErrorContains(t, err, "unknown server key")

	// A binary whose content does not match its fingerprint.
	swapped := strings.Replace(text, `sha-256="`+fp+`">`, `sha-256="`+manifest.Fingerprint(key(t, "server-2048"))+`">`, 1)
	_, err = Load(b, []byte(swapped))
	assert.ErrorIs(t, err, ErrInvalidCatalogue)
}

type countingQuery struct {
	mu    sync.Mutex
	calls int
	Query
}

func (q *countingQuery) FindAPIs(heiID, namespace, localName string) []APIEntry {
	q.mu.Lock()
	q.calls++
	q.mu.Unlock()
	return q.Query.FindAPIs(heiID, namespace, localName)
}

func (q *countingQuery) HEIsCoveredByClientKey(k *rsa.PublicKey) []string {
	q.mu.Lock()
	q.calls++
	q.mu.Unlock()
	return q.Query.HEIsCoveredByClientKey(k)
}

func TestCachedReadsThrough(t *testing.T) {
	backing := &countingQuery{Query: loadSnapshot(t)}
	c := NewCached(backing, time.Minute)

	ns := namespaces.InstitutionsEntryV2.URI
	first := c.FindAPIs("uw.edu.pl", ns, "institutions")
	second := c.FindAPIs("uw.edu.pl", ns, "institutions")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, backing.calls)

	c.FindAPIs("other.edu", ns, "institutions")
	assert.Equal(t, 2, backing.calls)

	k := key(t, "client-2048")
	assert.Equal(t, []string{"uw.edu.pl"}, c.HEIsCoveredByClientKey(k))
	assert.Equal(t, []string{"uw.edu.pl"}, c.HEIsCoveredByClientKey(key(t, "client-2048")))
	assert.Equal(t, 3, backing.calls, "equal keys share a cache entry")

	assert.True(t, c.IsInstitutionCoveredByClientKey("uw.edu.pl", k))
	require.Len(t, first, 1)
	assert.Len(t, c.ServerKeysCoveringAPI(first[0]), 1)
	assert.Equal(t, 5, c.Len())

	c.Flush()
	assert.Zero(t, c.Len())
	c.FindAPIs("uw.edu.pl", ns, "institutions")
	assert.Equal(t, 4, backing.calls)
}

func TestCachedConcurrent(t *testing.T) {
	c := NewCached(loadSnapshot(t), 0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				apis := c.FindAPIs("", namespaces.EchoEntryV2.URI, "echo")
				if len(apis) != 2 {
					t.Errorf("got %d echo APIs", len(apis))
					return
				}
			}
		}()
	}
	wg.Wait()
}
