package uiplan

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// Canonicalize returns the canonical JSON form of a plan. Object keys are
// sorted, so equal plans always produce identical bytes.
func Canonicalize(p Plan) ([]byte, error) {
	return json.Marshal(ToRaw(p))
}

// Fingerprint computes the blake3 hash of a canonicalized plan
func Fingerprint(p Plan) (string, error) {
	canonical, err := Canonicalize(p)
	if err != nil {
		return "", fmt.Errorf("canonicalize plan: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash plan: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
