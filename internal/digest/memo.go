package digest

import (
	gocache "github.com/patrickmn/go-cache"
)

// Memo remembers digests already computed for an algorithm. Digests never
// change for a given input, so entries do not expire.
type Memo struct {
	algorithm Algorithm
	cache     *gocache.Cache
}

// NewMemo returns a Memo for a. An invalid algorithm is accepted here and
// reported by Sum, so callers see ErrInvalidHashFunction at use time.
func NewMemo(a Algorithm) *Memo {
	return &Memo{
		algorithm: a,
		cache:     gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// Algorithm returns the algorithm the memo digests with.
func (m *Memo) Algorithm() Algorithm {
	return m.algorithm
}

// Sum returns the digest of s, computing it on first use.
func (m *Memo) Sum(s string) (string, error) {
	if cached, found := m.cache.Get(s); found {
		return cached.(string), nil
	}

	sum, err := Sum(m.algorithm, s)
	if err != nil {
		return "", err
	}
	m.cache.Set(s, sum, gocache.NoExpiration)
	return sum, nil
}

// Len returns the number of memoized digests.
func (m *Memo) Len() int {
	return m.cache.ItemCount()
}
