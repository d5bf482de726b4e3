// Package constraints implements the security and sanity rules a manifest
// has to pass before it is imported.
//
// Every rule inspects a schema-valid manifest document and reports what it
// found as report.Message values. Rules that find something unacceptable
// also remove it from the document, so later rules in a Chain see the tree
// as left by earlier ones. Content problems never become Go errors.
package constraints

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/catalogue"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/report"
)

// Check IDs of the messages emitted by the rules.
const (
	CheckSingleHost        = "HST-001"
	CheckSingleHEI         = "HEI-001"
	CheckInstitutionFilter = "HEI-002"
	CheckClientKeyInvalid  = "CLK-001"
	CheckClientKeyLength   = "CLK-002"
	CheckClientKeyUnique   = "CLK-003"
	CheckServerKeyInvalid  = "SRK-001"
	CheckServerKeyLength   = "SRK-002"
	CheckTLSCertInvalid    = "TLS-001"
	CheckTLSCertAlgorithm  = "TLS-002"
	CheckTLSCertLength     = "TLS-003"
	CheckRegistryAPI       = "API-001"
	CheckAPIUnique         = "API-002"
	CheckEndpointUnique    = "API-003"
	CheckEndpointURL       = "API-004"
	CheckAPIVersion        = "API-005"
	CheckDiscoveryEntry    = "API-006"
	CheckEmbeddedCatalogue = "API-007"
)

// A Constraint inspects a manifest and may remove parts of it.
//
// Filter must not keep a reference to doc after it returns. q is never nil
// when called from a Chain.
type Constraint interface {
	Name() string
	Filter(doc *etree.Document, q catalogue.Query) []report.Message
}

// Chain applies constraints in order.
type Chain struct {
	Constraints []Constraint
	Logger      *zap.Logger
}

// NewChain returns a chain of the given constraints.
func NewChain(constraints ...Constraint) *Chain {
	return &Chain{Constraints: constraints}
}

// Names lists the constraint names in application order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.Constraints))
	for i, cs := range c.Constraints {
		names[i] = cs.Name()
	}
	return names
}

// Apply runs every constraint on doc and returns all messages in the order
// they were produced. A nil q behaves like an empty catalogue.
func (c *Chain) Apply(doc *etree.Document, q catalogue.Query) []report.Message {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if q == nil {
		q = catalogue.Empty()
	}
	var all []report.Message
	for _, cs := range c.Constraints {
		msgs := cs.Filter(doc, q)
		if len(msgs) > 0 {
			logger.Debug("constraint reported",
				zap.String("constraint", cs.Name()),
				zap.Int("messages", len(msgs)),
				zap.Stringer("worst", report.Worst(msgs)))
		}
		all = append(all, msgs...)
	}
	return all
}

// rule adapts a function to the Constraint interface.
type rule struct {
	name   string
	filter func(doc *etree.Document, q catalogue.Query) []report.Message
}

func (r rule) Name() string { return r.name }

func (r rule) Filter(doc *etree.Document, q catalogue.Query) []report.Message {
	return r.filter(doc, q)
}

func notice(sev report.Severity, checkID, msg string) report.Message {
	return report.Message{Severity: sev, CheckID: checkID, Message: msg}
}
