package meta

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes keep hashes of different kinds of document apart.
const (
	DomainIssue   = "issuestate/issue/v1"
	DomainCatalog = "issuestate/catalog/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies an issue by the hash of its canonical JSON. Key order
// and Unicode normalization do not affect it.
func Fingerprint(issue Object) (string, error) {
	canonical, err := MarshalCanonical(issue)
	if err != nil {
		return "", fmt.Errorf("fingerprint issue: %w", err)
	}
	return hashWithDomain(DomainIssue, canonical), nil
}

// CatalogID identifies a compiled catalog by the hash of its canonical
// description.
func CatalogID(description Value) (string, error) {
	canonical, err := MarshalCanonical(description)
	if err != nil {
		return "", fmt.Errorf("catalog id: %w", err)
	}
	return hashWithDomain(DomainCatalog, canonical), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFingerprint(issue Object) string {
	id, err := Fingerprint(issue)
	if err != nil {
		panic(err)
	}
	return id
}
