package test

import (
	"MediaVault/utils"
	"strings"
	"testing"
)

func TestHashReader(t *testing.T) {
	// SHA-256 of "hello world", standard base64.
	hash, err := utils.HashReader(strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	want := "uU0nuZNNPgilLlLX2n2r+sSE7+N6U4DukIj3rOLvzek="
	if hash != want {
		t.Fatalf("hash = %q, want %q", hash, want)
	}
}

func TestHashReaderEmpty(t *testing.T) {
	hash, err := utils.HashReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	want := "47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU="
	if hash != want {
		t.Fatalf("hash = %q, want %q", hash, want)
	}
}
