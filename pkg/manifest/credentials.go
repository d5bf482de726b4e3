package manifest

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeBase64 decodes base64 text, ignoring any whitespace in it.
func DecodeBase64(text string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.Join(strings.Fields(text), ""))
}

// ParseRSAPublicKey parses base64-encoded X.509 SubjectPublicKeyInfo DER
// holding an RSA public key.
func ParseRSAPublicKey(text string) (*rsa.PublicKey, error) {
	der, err := DecodeBase64(text)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, err
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key (%T)", pub)
	}
	return rsaPub, nil
}

// ParseCertificate parses a base64-encoded DER X.509 certificate.
func ParseCertificate(text string) (*x509.Certificate, error) {
	der, err := DecodeBase64(text)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return x509.ParseCertificate(der)
}

// Fingerprint returns the lowercase hex SHA-256 of the key's
// SubjectPublicKeyInfo DER encoding, as used in catalogue key references.
func Fingerprint(pub *rsa.PublicKey) string {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		// Only unsupported key types fail to marshal.
		panic(err)
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:])
}
