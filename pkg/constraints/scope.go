package constraints

import (
	"fmt"
	"regexp"

	"github.com/beevik/etree"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/catalogue"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/manifest"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/report"
)

// reserved are the namespaces which must not appear below apis-implemented.
var reserved = map[string]bool{
	namespaces.Registry.URI:   true,
	namespaces.ManifestV5.URI: true,
	namespaces.ManifestV6.URI: true,
}

// RemoveEmbeddedCatalogues removes registry catalogue and manifest
// elements nested anywhere inside apis-implemented.
func RemoveEmbeddedCatalogues() Constraint {
	return rule{name: "RemoveEmbeddedCatalogues", filter: func(doc *etree.Document, _ catalogue.Query) []report.Message {
		var found []*etree.Element
		for _, host := range manifest.Hosts(doc) {
			found = append(found, manifest.Descendants(manifest.APIsImplemented(host), func(el *etree.Element) bool {
				return reserved[el.NamespaceURI()]
			})...)
		}
		if len(found) == 0 {
			return nil
		}
		manifest.RemoveAll(found)
		return []report.Message{notice(report.Warning, CheckEmbeddedCatalogue,
			"<p>For security reasons, descendants of the &lt;apis-implemented&gt; element are not "+
				"allowed to reside in Registry API and Discovery API namespaces. These elements will "+
				"not be imported, and you should remove them from your manifest.</p>")}
	}}
}

// RestrictInstitutionsCovered removes covered institutions whose id does
// not fully match pattern.
func RestrictInstitutionsCovered(pattern string) (Constraint, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid institution filter %q: %w", pattern, err)
	}
	return rule{name: "RestrictInstitutionsCovered", filter: func(doc *etree.Document, _ catalogue.Query) []report.Message {
		var msgs []report.Message
		for _, host := range manifest.Hosts(doc) {
			for _, hei := range manifest.CoveredHEIs(host) {
				id := manifest.HEIID(hei)
				if re.MatchString(id) {
					continue
				}
				manifest.Remove(hei)
				msgs = append(msgs, notice(report.Error, CheckInstitutionFilter, fmt.Sprintf(
					"Institution <code>%s</code> didn't match the <code>%s</code> filter pattern which is "+
						"currently assigned to this manifest source. This HEI will not be imported. "+
						"Please contact Registry Service maintainers.",
					report.EscapeHTML(id), report.EscapeHTML(pattern))))
			}
		}
		return msgs
	}}, nil
}
