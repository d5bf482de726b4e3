package constraints

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/catalogue"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/manifest"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/report"
)

// SingleHost keeps only the first host element of a manifest.
func SingleHost() Constraint {
	return rule{name: "VerifySingleHost", filter: func(doc *etree.Document, _ catalogue.Query) []report.Message {
		hosts := manifest.Hosts(doc)
		if len(hosts) <= 1 {
			return nil
		}
		removed := manifest.RemoveAll(hosts[1:])
		return []report.Message{notice(report.Error, CheckSingleHost, fmt.Sprintf(
			"Your manifest contains more than one host element. Only the first host will be "+
				"imported; the remaining %d host element(s) were removed.", removed))}
	}}
}

// SingleHEI warns about hosts covering more than one institution. Nothing
// is removed.
func SingleHEI() Constraint {
	return rule{name: "VerifySingleHEI", filter: func(doc *etree.Document, _ catalogue.Query) []report.Message {
		var msgs []report.Message
		for _, host := range manifest.Hosts(doc) {
			heis := manifest.CoveredHEIs(host)
			if len(heis) <= 1 {
				continue
			}
			msgs = append(msgs, notice(report.Warning, CheckSingleHEI, fmt.Sprintf(
				"Your host covers %d institutions. A host should cover at most one institution; "+
					"hosts covering more than one institution will not be imported soon.", len(heis))))
		}
		return msgs
	}}
}
