package constraints

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/catalogue"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/manifest"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/report"
)

// Credential is a parsed key or certificate. Cert is nil for bare keys.
type Credential struct {
	Key  *rsa.PublicKey
	Cert *x509.Certificate
}

// CredentialCheck verifies every credential element picked by Select:
// it must parse, pass Reject and carry an RSA modulus of at least MinBits.
// Failing elements are removed with an ERROR. Advise may add a message
// about a credential that is kept.
type CredentialCheck struct {
	Label string

	// InvalidName and LengthName name the credential in notices, Items is
	// the plural used for "One of your <items>".
	InvalidName string
	LengthName  string
	Items       string

	InvalidID string
	LengthID  string

	MinBits int

	Select func(doc *etree.Document) []*etree.Element
	Parse  func(text string) (Credential, error)
	Reject func(c Credential, pos string) *report.Message
	Advise func(doc *etree.Document, q catalogue.Query, c Credential, pos string) *report.Message
}

func (c CredentialCheck) Name() string { return c.Label }

func (c CredentialCheck) Filter(doc *etree.Document, q catalogue.Query) []report.Message {
	var msgs []report.Message
	elems := c.Select(doc)
	for i, el := range elems {
		pos := report.Position(i, len(elems))
		cred, err := c.Parse(el.Text())
		if err != nil {
			manifest.Remove(el)
			msgs = append(msgs, notice(report.Error, c.InvalidID, fmt.Sprintf(
				"Invalid %s (%s): %s", c.InvalidName, pos, report.EscapeHTML(err.Error()))))
			continue
		}
		if c.Reject != nil {
			if m := c.Reject(cred, pos); m != nil {
				manifest.Remove(el)
				msgs = append(msgs, *m)
				continue
			}
		}
		if bits := cred.Key.N.BitLen(); bits < c.MinBits {
			manifest.Remove(el)
			msgs = append(msgs, notice(report.Error, c.LengthID, fmt.Sprintf(
				"The minimum required length of %s is %d bits. One of your %s (%s) uses %d bits only. "+
					"It will not be imported.", c.LengthName, c.MinBits, c.Items, pos, bits)))
			continue
		}
		if c.Advise != nil {
			if m := c.Advise(doc, q, cred, pos); m != nil {
				msgs = append(msgs, *m)
			}
		}
	}
	return msgs
}

func parseKey(text string) (Credential, error) {
	key, err := manifest.ParseRSAPublicKey(text)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Key: key}, nil
}

func parseCertificate(text string) (Credential, error) {
	cert, err := manifest.ParseCertificate(text)
	if err != nil {
		return Credential{}, err
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return Credential{}, fmt.Errorf("certificate key is not an RSA key (%T)", cert.PublicKey)
	}
	return Credential{Key: key, Cert: cert}, nil
}

// ClientKey checks the client RSA keys of a manifest and warns when a key
// is already registered for another institution, or for more than one.
func ClientKey(minBits int) CredentialCheck {
	return CredentialCheck{
		Label:       "ClientKey",
		InvalidName: "client public key",
		LengthName:  "client public key",
		Items:       "keys",
		InvalidID:   CheckClientKeyInvalid,
		LengthID:    CheckClientKeyLength,
		MinBits:     minBits,
		Select:      manifest.ClientKeys,
		Parse:       parseKey,
		Advise:      clientKeyUnique,
	}
}

func clientKeyUnique(doc *etree.Document, q catalogue.Query, c Credential, pos string) *report.Message {
	hei := manifest.FirstHEIID(doc)
	if hei == "" {
		return nil
	}
	covered := q.HEIsCoveredByClientKey(c.Key)
	if len(covered) == 0 || (len(covered) == 1 && covered[0] == hei) {
		return nil
	}
	escaped := make([]string, len(covered))
	for i, id := range covered {
		escaped[i] = report.EscapeHTML(id)
	}
	m := notice(report.Warning, CheckClientKeyUnique, fmt.Sprintf(
		"The client public key is not unique. One of your keys (%s) is already registered in the "+
			"network and covers [%s]. Such keys will not be imported soon.", pos, strings.Join(escaped, ", ")))
	return &m
}

// ServerKey checks the server RSA keys of a manifest.
func ServerKey(minBits int) CredentialCheck {
	return CredentialCheck{
		Label:       "ServerKey",
		InvalidName: "server public key",
		LengthName:  "server public key",
		Items:       "keys",
		InvalidID:   CheckServerKeyInvalid,
		LengthID:    CheckServerKeyLength,
		MinBits:     minBits,
		Select:      manifest.ServerKeys,
		Parse:       parseKey,
	}
}

// TLSClientCertificate checks the TLS client certificates of v5 manifests.
// Certificates signed with an MD-based algorithm are removed whatever
// their key length.
func TLSClientCertificate(minBits int) CredentialCheck {
	return CredentialCheck{
		Label:       "TLSClientCertificate",
		InvalidName: "client certificate",
		LengthName:  "TLS client certificate key",
		Items:       "TLS client certificates",
		InvalidID:   CheckTLSCertInvalid,
		LengthID:    CheckTLSCertLength,
		MinBits:     minBits,
		Select:      manifest.ClientCertificates,
		Parse:       parseCertificate,
		Reject:      rejectMDSignature,
	}
}

func rejectMDSignature(c Credential, pos string) *report.Message {
	alg := c.Cert.SignatureAlgorithm.String()
	if !strings.HasPrefix(alg, "MD") {
		return nil
	}
	m := notice(report.Error, CheckTLSCertAlgorithm, fmt.Sprintf(
		"One of your TLS client certificates (%s) uses an insecure MD-based signature algorithm (%s). "+
			"It will not be imported.", pos, report.EscapeHTML(alg)))
	return &m
}
