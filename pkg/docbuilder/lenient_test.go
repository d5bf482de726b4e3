package docbuilder

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/manifest"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
)

func TestBuildManifestDropsInvalidEntries(t *testing.T) {
	b := newBuilder(t)
	raw := readManifest(t, "invalid-entry.xml")

	strict := b.Build(BuildInput{Raw: raw})
	require.False(t, strict.Valid)

	out := b.BuildManifest(BuildInput{Raw: raw}.Expecting(namespaces.ManifestV6Root))
	require.True(t, out.Valid, "errors: %v", out.Errors)
	assert.NotEmpty(t, out.Errors, "dropped entries are reported")

	entries := manifest.AllAPIEntries(out.Document)
	require.Len(t, entries, 2)
	assert.Equal(t, "discovery", entries[0].Tag)
	assert.Equal(t, "echo", entries[1].Tag)
}

func TestBuildManifestValid(t *testing.T) {
	b := newBuilder(t)
	out := b.BuildManifest(BuildInput{Raw: readManifest(t, "valid-v6.xml")})
	assert.True(t, out.Valid)
	assert.Empty(t, out.Errors)
	assert.Len(t, manifest.AllAPIEntries(out.Document), 3)
}

func TestBuildManifestInvalidOutsideEntries(t *testing.T) {
	b := newBuilder(t)
	out := b.BuildManifest(BuildInput{Raw: readManifest(t, "schema-invalid.xml")})
	require.True(t, out.Parsed())
	assert.False(t, out.Valid)
	assert.NotEmpty(t, out.Errors)

	out = b.BuildManifest(BuildInput{Raw: readManifest(t, "valid-v6.xml")}.Expecting(namespaces.ManifestV5Root))
	assert.False(t, out.Valid, "root namespace mismatch is not an entry problem")
	assert.Len(t, manifest.AllAPIEntries(out.Document), 3, "nothing dropped from an invalid manifest")
}

func TestBuildManifestNotWellFormed(t *testing.T) {
	b := newBuilder(t)
	out := b.BuildManifest(BuildInput{Raw: readManifest(t, "not-well-formed.xml"), MakePretty: true})
	assert.False(t, out.Parsed())
	assert.Len(t, out.Errors, 1)
	assert.Empty(t, out.PrettyLines)
}

func TestEntrySpans(t *testing.T) {
	raw := []byte(`<m>
  <r:apis-implemented xmlns:r="urn:r">
    <a>
      <url>x</url>
    </a><b/>
    <c><apis-implemented><nested/></apis-implemented></c>
  </r:apis-implemented>
  <other/>
</m>`)
	spans, err := entrySpans(raw)
	require.NoError(t, err)
	require.Len(t, spans, 3)

	assert.Equal(t, 3, spans[0].start.line)
	assert.Equal(t, 5, spans[0].end.line)
	assert.Equal(t, 5, spans[1].start.line)
	assert.Equal(t, 6, spans[2].start.line)

	assert.True(t, spans[0].contains(position{line: 4, column: 7}))
	assert.False(t, spans[0].contains(position{line: 5, column: 12}), "<b/> starts after </a>")
	assert.True(t, spans[1].contains(position{line: 5, column: 12}))
	assert.True(t, spans[1].contains(position{line: 5}), "zero column matches the whole line")
	assert.True(t, spans[0].contains(position{line: 5}))
	assert.False(t, spans[0].contains(position{line: 8, column: 3}))

	entries := apiEntries(mustParse(t, raw).Root())
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{entries[0].Tag, entries[1].Tag, entries[2].Tag})
}

func mustParse(t *testing.T, raw []byte) *etree.Document {
	t.Helper()
	doc, err := parse(raw)
	require.NoError(t, err)
	return doc
}
