// Package catalogue answers questions about institutions and APIs that are
// already registered in the network.
//
// Admission never writes to the catalogue. Constraints consume it through
// the Query interface, which must be safe for concurrent use. Snapshot is an
// in-memory implementation loaded from a registry catalogue document, and
// Cached adds a read-through cache in front of any Query.
package catalogue

import (
	"crypto/rsa"
)

// APIEntry is an API registered in the catalogue.
type APIEntry struct {
	Namespace string
	LocalName string
	Version   string
	URL       string

	// HEIs lists the institutions covered by the host declaring the API.
	HEIs []string

	// host is the 1-based position of the declaring host in the snapshot
	// the entry came from, 0 if unknown.
	host int
}

// Query is the read-only view of the published catalogue.
type Query interface {
	// FindAPIs returns the registered APIs of the given class. An empty
	// heiID matches APIs of every institution.
	FindAPIs(heiID, namespace, localName string) []APIEntry

	// HEIsCoveredByClientKey returns the institutions whose hosts use key as
	// a client credential.
	HEIsCoveredByClientKey(key *rsa.PublicKey) []string

	// ServerKeysCoveringAPI returns the server keys of the host declaring api.
	ServerKeysCoveringAPI(api APIEntry) []*rsa.PublicKey

	// IsInstitutionCoveredByClientKey reports whether key is a client
	// credential of a host covering heiID.
	IsInstitutionCoveredByClientKey(heiID string, key *rsa.PublicKey) bool
}
