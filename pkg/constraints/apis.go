package constraints

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/catalogue"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/manifest"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/report"
)

// urlElements are the local names of URL-bearing elements in API entries.
var urlElements = map[string]bool{
	"url":        true,
	"get-url":    true,
	"index-url":  true,
	"update-url": true,
	"stats-url":  true,
}

// exempt reports whether entry is an echo or discovery API. Those may be
// declared by any number of institutions under any URL.
func exempt(entry *etree.Element) bool {
	return entry.Tag == "echo" || entry.Tag == "discovery"
}

// ForbidRegistryImplementations removes registry API entries declared under
// federationPrefix. Only the Registry Service at registryURL implements that
// API.
func ForbidRegistryImplementations(federationPrefix, registryURL string) Constraint {
	registryEntryPrefix := federationPrefix + "ewp-specs-api-registry/"
	return rule{name: "ForbidRegistryImplementations", filter: func(doc *etree.Document, _ catalogue.Query) []report.Message {
		var msgs []report.Message
		for _, entry := range manifest.AllAPIEntries(doc) {
			if entry.Tag != "registry" || !strings.HasPrefix(entry.NamespaceURI(), registryEntryPrefix) {
				continue
			}
			manifest.Remove(entry)
			u := report.EscapeHTML(registryURL)
			msgs = append(msgs, notice(report.Warning, CheckRegistryAPI, fmt.Sprintf(
				"<p>Your manifest declares an implementation of the Registry API. Only the Registry "+
					"Service (<a href='%s'>%s</a>) is allowed to implement it. This API entry will not be "+
					"imported, and you should remove it from your manifest.</p>", u, u)))
		}
		return msgs
	}}
}

// EndpointURLCorrect removes API entries carrying a URL which is not an
// absolute HTTPS URL without a fragment. Echo and discovery entries are not
// checked.
func EndpointURLCorrect() Constraint {
	return rule{name: "EndpointURLCorrect", filter: func(doc *etree.Document, _ catalogue.Query) []report.Message {
		var msgs []report.Message
		for _, entry := range manifest.AllAPIEntries(doc) {
			if exempt(entry) {
				continue
			}
			urls := manifest.Descendants(entry, func(el *etree.Element) bool { return urlElements[el.Tag] })
			for _, el := range urls {
				raw := strings.TrimSpace(el.Text())
				if validHTTPS(raw) {
					continue
				}
				manifest.Remove(entry)
				msgs = append(msgs, notice(report.Error, CheckEndpointURL, fmt.Sprintf(
					"URL \"%s\" is not correct. The API will not be imported.", report.EscapeHTML(raw))))
				break
			}
		}
		return msgs
	}}
}

func validHTTPS(raw string) bool {
	if raw == "" || strings.ContainsAny(raw, " \t\r\n#") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host != "" && u.Hostname() != "" && u.Opaque == ""
}

// federationEntries returns the API entries in namespaces starting with
// prefix. With skipExempt, echo and discovery entries are left out.
func federationEntries(doc *etree.Document, prefix string, skipExempt bool) []*etree.Element {
	var out []*etree.Element
	for _, entry := range manifest.AllAPIEntries(doc) {
		if skipExempt && exempt(entry) {
			continue
		}
		if !strings.HasPrefix(entry.NamespaceURI(), prefix) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// APIUnique removes API entries which the manifest's institution already
// has registered under a different URL.
func APIUnique(federationPrefix string) Constraint {
	return rule{name: "APIUnique", filter: func(doc *etree.Document, q catalogue.Query) []report.Message {
		hei := manifest.FirstHEIID(doc)
		if hei == "" {
			return nil
		}
		var msgs []report.Message
		for _, entry := range federationEntries(doc, federationPrefix, true) {
			own := manifest.EntryURL(entry)
			for _, registered := range q.FindAPIs(hei, entry.NamespaceURI(), entry.Tag) {
				if registered.URL == own {
					continue
				}
				manifest.Remove(entry)
				msgs = append(msgs, notice(report.Error, CheckAPIUnique, fmt.Sprintf(
					"API %s is already in the registry under URL: %s. It will not be imported.",
					report.EscapeHTML(entry.Tag), report.EscapeHTML(registered.URL))))
				break
			}
		}
		return msgs
	}}
}

// EndpointUnique removes API entries whose URL is already registered by a
// host whose server keys the manifest does not all share. Manifests without
// server keys are not checked.
func EndpointUnique(federationPrefix string) Constraint {
	return rule{name: "EndpointUnique", filter: func(doc *etree.Document, q catalogue.Query) []report.Message {
		own := make(map[string]bool)
		for _, el := range manifest.ServerKeys(doc) {
			if key, err := manifest.ParseRSAPublicKey(el.Text()); err == nil {
				own[manifest.Fingerprint(key)] = true
			}
		}
		if len(own) == 0 {
			return nil
		}
		var msgs []report.Message
		for _, entry := range federationEntries(doc, federationPrefix, false) {
			ownURL := manifest.EntryURL(entry)
			for _, registered := range q.FindAPIs("", entry.NamespaceURI(), entry.Tag) {
				if registered.URL != ownURL || coversAll(own, q, registered) {
					continue
				}
				manifest.Remove(entry)
				msgs = append(msgs, notice(report.Error, CheckEndpointUnique, fmt.Sprintf(
					"API %s is already in the registry under the same URL: %s. It will not be imported.",
					report.EscapeHTML(entry.Tag), report.EscapeHTML(registered.URL))))
				break
			}
		}
		return msgs
	}}
}

// coversAll reports whether own contains every server key of the host that
// registered api.
func coversAll(own map[string]bool, q catalogue.Query, api catalogue.APIEntry) bool {
	for _, key := range q.ServerKeysCoveringAPI(api) {
		if !own[manifest.Fingerprint(key)] {
			return false
		}
	}
	return true
}
