package activity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DomainDataset prefixes dataset fingerprints. The version suffix allows
// the encoding to change without colliding with old fingerprints.
const DomainDataset = "campusgen/dataset/v1"

// Fingerprint returns a content address for records: the hex SHA-256 of
// DomainDataset, a NUL separator, and the records' JSON encoding.
//
// Two files hold the same dataset exactly when their records fingerprint
// equally, whatever container they were read from. Order matters.
func Fingerprint(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("fingerprint: failed to marshal: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(DomainDataset))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFingerprint(records []Record) string {
	fp, err := Fingerprint(records)
	if err != nil {
		panic(err)
	}
	return fp
}
