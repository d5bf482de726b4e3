package docbuilder

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"
)

// FuzzBuildManifest feeds arbitrary bytes to the lenient build. Run with
//
//	go test ./pkg/docbuilder -fuzz FuzzBuildManifest
func FuzzBuildManifest(f *testing.F) {
	paths, err := filepath.Glob(filepath.Join(testdataDir(f), "manifests", "*.xml"))
	if err != nil {
		f.Fatal(err)
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(data)
	}
	f.Add([]byte(""))
	f.Add([]byte("<a/><b/>"))
	f.Add([]byte("\xef\xbb\xbf<?xml version=\"1.0\"?><x/>"))

	b := newBuilder(f)
	f.Fuzz(func(t *testing.T, raw []byte) {
		out := b.BuildManifest(BuildInput{Raw: raw})
		if !out.Valid && len(out.Errors) == 0 {
			t.Fatal("invalid manifest without errors")
		}
		if out.Valid && !out.Parsed() {
			t.Fatal("valid manifest without a document")
		}

		pretty := b.Build(BuildInput{Raw: raw, MakePretty: true})
		if pretty.Parsed() != out.Parsed() {
			t.Fatal("strict and lenient builds disagree on well-formedness")
		}
		if len(pretty.PrettyLines) == 0 {
			t.Fatal("pretty output requested but empty")
		}
		if !utf8.ValidString(pretty.PrettyXML) {
			t.Fatal("pretty output is not UTF-8")
		}
		for _, e := range append(out.Errors, pretty.Errors...) {
			if e.Line < 1 {
				t.Fatalf("error without a line: %v", e)
			}
		}
	})
}
