package utils

import (
	"crypto/sha256"
	"encoding/base64"
	"io"
)

// HashReader streams r through SHA-256 and returns the base64 digest.
func HashReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}
