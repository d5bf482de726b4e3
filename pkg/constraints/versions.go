package constraints

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/beevik/etree"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/catalogue"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/manifest"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/report"
)

var stableNamespace = regexp.MustCompile(`^.*/stable-v([0-9]+)`)

// ExpectedVersionPrefixes returns the version prefixes allowed for APIs in
// namespace: "N." for a stable-vN namespace (and also "0." for stable-v1),
// "0." for drafts on master, and nothing for any other shape.
func ExpectedVersionPrefixes(namespace string) []string {
	m := stableNamespace.FindStringSubmatch(namespace)
	switch {
	case m != nil && m[1] == "1":
		return []string{"1.", "0."}
	case m != nil:
		return []string{m[1] + "."}
	case strings.Contains(namespace, "/master"):
		return []string{"0."}
	}
	return nil
}

// VerifyAPIVersions warns about API entries whose version attribute does
// not match the major version encoded in their namespace.
func VerifyAPIVersions(federationPrefix string) Constraint {
	return rule{name: "VerifyAPIVersions", filter: func(doc *etree.Document, _ catalogue.Query) []report.Message {
		var msgs []report.Message
		for _, entry := range federationEntries(doc, federationPrefix, false) {
			ns := entry.NamespaceURI()
			version, ok := manifest.Version(entry)
			expected := ExpectedVersionPrefixes(ns)
			if !ok || len(expected) == 0 {
				continue
			}
			if slices.ContainsFunc(expected, func(p string) bool { return strings.HasPrefix(version, p) }) {
				continue
			}
			alternatives := make([]string, len(expected))
			for i, p := range expected {
				alternatives[i] = "<code>" + report.EscapeHTML(p) + "</code>"
			}
			msgs = append(msgs, notice(report.Warning, CheckAPIVersion, fmt.Sprintf(
				"<p>According to EWP's <a href='https://github.com/erasmus-without-paper/"+
					"ewp-specs-management#git-branches-and-xml-namespaces'>namespace-naming rules</a>, "+
					"the version of your API in the <code>%s</code> namespace should start with %s, "+
					"but <code>%s</code> was found instead.</p>"+
					"<p>Note, that this check is applied only for API namespaces beginning with "+
					"<code>%s</code>.</p>",
				report.EscapeHTML(ns), strings.Join(alternatives, " or "), report.EscapeHTML(version),
				report.EscapeHTML(federationPrefix))))
		}
		return msgs
	}}
}

// VerifyDiscoveryAPIEntry warns when none of the manifest's discovery API
// entries lists fetchURL, the URL the manifest was fetched from. Discovery
// entries of every manifest generation live under federationPrefix.
func VerifyDiscoveryAPIEntry(federationPrefix, fetchURL string) Constraint {
	discoveryPrefix := federationPrefix + "ewp-specs-api-discovery/"
	return rule{name: "VerifyDiscoveryAPIEntry", filter: func(doc *etree.Document, _ catalogue.Query) []report.Message {
		if fetchURL == "" {
			return nil
		}
		for _, entry := range manifest.AllAPIEntries(doc) {
			ns := entry.NamespaceURI()
			if entry.Tag != "discovery" || !strings.HasPrefix(ns, discoveryPrefix) {
				continue
			}
			for _, u := range manifest.Children(entry, ns, "url") {
				if strings.TrimSpace(u.Text()) == fetchURL {
					return nil
				}
			}
		}
		return []report.Message{notice(report.Warning, CheckDiscoveryEntry, fmt.Sprintf(
			"We have found an inconsistency in your Discovery API manifest. We were expecting to "+
				"find this URL in one of your discovery/url elements, but we didn't:"+
				"<ul><li><code>%s</code></li></ul>"+
				"<p>This is not vital for most EWP clients, because Discovery API is usually accessed "+
				"by the Registry Service only, but still, it seems to be a small bug that you should fix.</p>",
			report.EscapeHTML(fetchURL)))}
	}}
}
