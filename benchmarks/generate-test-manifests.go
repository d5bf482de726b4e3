// generate-test-manifests.go creates discovery manifests of various sizes
// for benchmarking the admission pipeline.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
)

func main() {
	dir := "benchmarks/corpus"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dir, err)
		os.Exit(1)
	}

	sizes := []struct {
		name    string
		entries int
		heis    int
		keys    int
	}{
		{"tiny-2api", 2, 1, 1},
		{"small-20api", 20, 1, 2},
		{"medium-200api", 200, 5, 4},
		{"large-2000api", 2000, 20, 8},
	}

	var keys []string
	for range 8 {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
			os.Exit(1)
		}
		der, err := x509.MarshalPKIXPublicKey(&k.PublicKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding key: %v\n", err)
			os.Exit(1)
		}
		keys = append(keys, base64.StdEncoding.EncodeToString(der))
	}

	for _, s := range sizes {
		path := filepath.Join(dir, s.name+".xml")
		doc := generateManifest(s.entries, s.heis, keys[:s.keys])
		doc.Indent(2)
		if err := doc.WriteToFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", path, err)
			os.Exit(1)
		}
		fi, _ := os.Stat(path)
		fmt.Printf("Generated %s (%d KB)\n", path, fi.Size()/1024)
	}
}

// generateManifest builds a v6 manifest. Every tenth entry carries a URL
// with a fragment and every version is off by one major every seventh
// entry, so the constraints have something to do.
func generateManifest(entries, heis int, keys []string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(namespaces.ManifestV6.Prefix + ":manifest")
	for _, ns := range []namespaces.Entry{
		namespaces.ManifestV6, namespaces.Registry, namespaces.CommonTypes,
		namespaces.DiscoveryEntryV6, namespaces.EchoEntryV2, namespaces.InstitutionsEntryV2,
	} {
		root.CreateAttr("xmlns:"+ns.Prefix, ns.URI)
	}

	host := root.CreateElement("mf6:host")
	host.CreateElement("ewp:admin-email").SetText("admin@bench.example.edu")
	apis := host.CreateElement("r:apis-implemented")

	disc := apis.CreateElement("d6:discovery")
	disc.CreateAttr("version", "6.0.0")
	disc.CreateElement("d6:url").SetText("https://bench.example.edu/manifest.xml")

	for i := 1; i < entries; i++ {
		if i%2 == 1 {
			echo := apis.CreateElement("e2:echo")
			echo.CreateAttr("version", "2.0.1")
			echo.CreateElement("e2:url").SetText(fmt.Sprintf("https://bench.example.edu/echo/%d", i))
			continue
		}
		version := "2.1.0"
		if i%7 == 0 {
			version = "3.0.0"
		}
		url := fmt.Sprintf("https://bench.example.edu/institutions/%d", i)
		if i%10 == 0 {
			url += "#fragment"
		}
		inst := apis.CreateElement("in2:institutions")
		inst.CreateAttr("version", version)
		inst.CreateElement("in2:url").SetText(url)
		inst.CreateElement("in2:max-hei-ids").SetText("1")
	}

	covered := host.CreateElement("mf6:institutions-covered")
	for i := range heis {
		id := fmt.Sprintf("hei%d.bench.example.edu", i)
		hei := covered.CreateElement("r:hei")
		hei.CreateAttr("id", id)
		hei.CreateElement("r:name").SetText(id)
	}

	client := host.CreateElement("mf6:client-credentials-in-use")
	server := host.CreateElement("mf6:server-credentials-in-use")
	for i, k := range keys {
		if i%2 == 0 {
			client.CreateElement("mf6:rsa-public-key").SetText(k)
		} else {
			server.CreateElement("mf6:rsa-public-key").SetText(k)
		}
	}
	return doc
}
