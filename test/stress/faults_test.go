package stress_test

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/admission"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/report"
)

// fault is a single mutation applied to the text of a generated manifest.
type fault struct {
	name   string
	weight int // relative probability weight
	apply  func(doc string, rng *rand.Rand, keys map[string]string) string
}

func cut(doc, open, end string) string {
	i := strings.Index(doc, open)
	if i < 0 {
		return doc
	}
	j := strings.Index(doc[i:], end)
	if j < 0 {
		return doc
	}
	return doc[:i] + doc[i+j+len(end):]
}

func between(doc, open, end string) string {
	i := strings.Index(doc, open)
	if i < 0 {
		return ""
	}
	j := strings.Index(doc[i:], end)
	if j < 0 {
		return ""
	}
	return doc[i : i+j+len(end)]
}

func replaceKey(doc, section, key string) string {
	block := between(doc, "<mf6:"+section+">", "</mf6:"+section+">")
	if block == "" {
		return doc
	}
	repl := fmt.Sprintf("<mf6:%s>\n<mf6:rsa-public-key>%s</mf6:rsa-public-key>\n</mf6:%s>", section, key, section)
	return strings.Replace(doc, block, repl, 1)
}

var faults = []fault{
	{"missing_discovery", 3, func(doc string, _ *rand.Rand, _ map[string]string) string {
		return cut(doc, "<d6:discovery", "</d6:discovery>")
	}},
	{"second_host", 2, func(doc string, _ *rand.Rand, _ map[string]string) string {
		host := between(doc, "<mf6:host>", "</mf6:host>")
		return strings.Replace(doc, "</mf6:manifest>", host+"</mf6:manifest>", 1)
	}},
	{"foreign_hei", 3, func(doc string, _ *rand.Rand, _ map[string]string) string {
		return strings.Replace(doc, "</mf6:institutions-covered>",
			`<r:hei id="hijack.edu"><r:name>hijack.edu</r:name></r:hei></mf6:institutions-covered>`, 1)
	}},
	{"garbage_client_key", 2, func(doc string, _ *rand.Rand, _ map[string]string) string {
		return replaceKey(doc, "client-credentials-in-use", "bm90IGEga2V5")
	}},
	{"weak_client_key", 3, func(doc string, _ *rand.Rand, keys map[string]string) string {
		return replaceKey(doc, "client-credentials-in-use", keys["client-1024"])
	}},
	{"weak_server_key", 3, func(doc string, _ *rand.Rand, keys map[string]string) string {
		return replaceKey(doc, "server-credentials-in-use", keys["server-1024"])
	}},
	{"foreign_client_key", 2, func(doc string, _ *rand.Rand, keys map[string]string) string {
		return replaceKey(doc, "client-credentials-in-use", keys["client-other-2048"])
	}},
	{"url_fragment", 2, func(doc string, _ *rand.Rand, _ map[string]string) string {
		return strings.Replace(doc, "https://uw.example.edu/ewp/echo<", "https://uw.example.edu/ewp/echo#top<", 1)
	}},
	{"plain_http_url", 2, func(doc string, _ *rand.Rand, _ map[string]string) string {
		return strings.Replace(doc, "https://uw.example.edu/ewp/echo<", "http://uw.example.edu/ewp/echo<", 1)
	}},
	{"version_garbage", 2, func(doc string, rng *rand.Rand, _ map[string]string) string {
		versions := []string{"banana", "2", "2.0", "", "9.9.9", "1.0.0-rc1"}
		return strings.Replace(doc, `<e2:echo version="2.0.1">`,
			fmt.Sprintf(`<e2:echo version="%s">`, versions[rng.IntN(len(versions))]), 1)
	}},
	{"duplicate_endpoint", 2, func(doc string, _ *rand.Rand, _ map[string]string) string {
		return insertEntries(doc, `<e2:echo version="2.0.1"><e2:url>https://uw.example.edu/ewp/echo</e2:url></e2:echo>`)
	}},
	{"invalid_entry", 3, func(doc string, _ *rand.Rand, _ map[string]string) string {
		return insertEntries(doc, `<in2:institutions version="2.1.0"><in2:max-hei-ids>1</in2:max-hei-ids></in2:institutions>`)
	}},
	{"embedded_catalogue", 1, func(doc string, _ *rand.Rand, _ map[string]string) string {
		return insertEntries(doc, `<x:wrap xmlns:x="urn:example:wrap" version="1.0.0"><r:catalogue/></x:wrap>`)
	}},
	{"unknown_host_child", 1, func(doc string, _ *rand.Rand, _ map[string]string) string {
		return strings.Replace(doc, "</ewp:admin-email>", "</ewp:admin-email><mf6:bogus/>", 1)
	}},
	{"truncated", 1, func(doc string, rng *rand.Rand, _ map[string]string) string {
		return doc[:rng.IntN(len(doc))]
	}},
}

func loadKeys(t *testing.T) map[string]string {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(repoRoot(t), "testdata", "keys", "*.b64"))
	require.NoError(t, err)
	keys := make(map[string]string, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		keys[strings.TrimSuffix(filepath.Base(p), ".b64")] = strings.TrimSpace(string(data))
	}
	return keys
}

// generate applies up to four distinct faults, picked by weight.
func generate(base string, rng *rand.Rand, keys map[string]string) (string, []string) {
	numFaults := rng.IntN(5)
	used := map[string]bool{}
	var names []string
	doc := base
	for range numFaults {
		total := 0
		for _, f := range faults {
			if !used[f.name] {
				total += f.weight
			}
		}
		pick := rng.IntN(total)
		cumulative := 0
		for _, f := range faults {
			if used[f.name] {
				continue
			}
			cumulative += f.weight
			if pick < cumulative {
				used[f.name] = true
				doc = f.apply(doc, rng, keys)
				names = append(names, f.name)
				break
			}
		}
	}
	return doc, names
}

func TestFaultInjection(t *testing.T) {
	const count = 150
	p := newPipeline(t)
	base := baseManifest(t)
	keys := loadKeys(t)
	rng := rand.New(rand.NewPCG(42, 1))

	for i := 1; i <= count; i++ {
		doc, names := generate(base, rng, keys)
		label := "valid"
		if len(names) > 0 {
			label = strings.Join(names, "+")
		}
		t.Run(fmt.Sprintf("%03d-%s", i, label), func(t *testing.T) {
			res, err := p.AdmitFrom(uwSource, []byte(doc))
			require.NoError(t, err)
			assert.Equal(t, report.Worst(res.Notices), res.Worst)

			if !res.Before.Parsed() {
				assert.False(t, res.Admitted())
				assert.True(t, hasCheck(res.Notices, admission.CheckNotWellFormed))
				return
			}
			if !res.Admitted() {
				assert.Equal(t, report.Error, res.Worst)
				return
			}
			assert.False(t, hasCheck(res.Notices, admission.CheckNotWellFormed))
			assert.False(t, hasCheck(res.Notices, admission.CheckSchema))
			if len(names) == 0 {
				assert.Equal(t, report.OK, res.Worst)
			}

			again, err := p.AdmitFrom(uwSource, []byte(res.After.PrettyXML))
			require.NoError(t, err)
			assert.True(t, again.Admitted(), "notices: %v", again.Notices)
			assert.Less(t, again.Worst, report.Error, "notices: %v", again.Notices)
			assert.False(t, hasCheck(again.Notices, admission.CheckEntryDropped))
		})
	}
}
