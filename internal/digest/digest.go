package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ErrInvalidHashFunction is returned when a digest is requested with an
// algorithm this package does not implement.
var ErrInvalidHashFunction = errors.New("invalid hash function")

// Algorithm selects the digest applied to a cache-key fragment.
type Algorithm string

const (
	None     Algorithm = ""
	MD5      Algorithm = "md5"
	SHA1     Algorithm = "sha1"
	SHA256   Algorithm = "sha256"
	XXHash64 Algorithm = "xxhash64"
)

// Supported lists every algorithm Sum accepts.
var Supported = []Algorithm{MD5, SHA1, SHA256, XXHash64}

// Parse looks up an algorithm by name, ignoring case and surrounding spaces.
// An empty name parses to None.
func Parse(name string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if a == None || a.Valid() {
		return a, nil
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidHashFunction, name)
}

// Valid reports whether Sum can compute a digest with a.
func (a Algorithm) Valid() bool {
	return a.Len() > 0
}

// Len returns the length of the hex encoded digest produced by a.
func (a Algorithm) Len() int {
	switch a {
	case MD5:
		return md5.Size * 2
	case SHA1:
		return sha1.Size * 2
	case SHA256:
		return sha256.Size * 2
	case XXHash64:
		return 16
	default:
		return 0
	}
}

func (a Algorithm) String() string {
	if a == None {
		return "none"
	}
	return string(a)
}

// Sum returns the lowercase hex digest of s.
func Sum(a Algorithm, s string) (string, error) {
	switch a {
	case MD5:
		h := md5.Sum([]byte(s))
		return hex.EncodeToString(h[:]), nil
	case SHA1:
		h := sha1.Sum([]byte(s))
		return hex.EncodeToString(h[:]), nil
	case SHA256:
		h := sha256.Sum256([]byte(s))
		return hex.EncodeToString(h[:]), nil
	case XXHash64:
		return fmt.Sprintf("%016x", xxhash.Sum64String(s)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHashFunction, string(a))
	}
}
