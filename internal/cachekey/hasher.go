package cachekey

import (
	"fmt"

	"go-imagine-keys/internal/digest"
	"go-imagine-keys/internal/metrics"
	"go-imagine-keys/pkg/logger"

	"go.uber.org/zap"
)

// DefaultDigestLength is the number of digest characters kept per size.
const DefaultDigestLength = 8

// Hasher computes short digests for every operation set of a SizeConfigs.
type Hasher struct {
	length            int
	lastOperationOnly bool
	memo              *digest.Memo
}

// NewHasher returns a Hasher digesting with a and keeping length characters.
// A length <= 0 selects DefaultDigestLength.
func NewHasher(a digest.Algorithm, length int, lastOperationOnly bool) *Hasher {
	if length <= 0 {
		length = DefaultDigestLength
	}
	return &Hasher{
		length:            length,
		lastOperationOnly: lastOperationOnly,
		memo:              digest.NewMemo(a),
	}
}

// HashAll digests configs with MD5 using the default separators.
func HashAll(configs SizeConfigs, length int) (DigestTable, error) {
	return NewHasher(digest.MD5, length, false).HashAll(configs)
}

// Hash returns the truncated digest of ops. An empty operation set has an
// empty digest.
func (h *Hasher) Hash(ops Operations) (string, error) {
	raw, err := Serialize(ops, Options{LastOperationOnly: h.lastOperationOnly})
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}

	sum, err := h.memo.Sum(raw)
	if err != nil {
		return "", err
	}
	if len(sum) > h.length {
		sum = sum[:h.length]
	}
	return sum, nil
}

// HashAll returns a new table with the same namespaces and size names as
// configs. configs is not modified.
func (h *Hasher) HashAll(configs SizeConfigs) (DigestTable, error) {
	algorithm := h.memo.Algorithm().String()
	table := make(DigestTable, len(configs))
	for namespace, sizes := range configs {
		hashed := make(map[string]string, len(sizes))
		for name, ops := range sizes {
			sum, err := h.Hash(ops)
			if err != nil {
				return nil, fmt.Errorf("hash %s.%s: %w", namespace, name, err)
			}
			hashed[name] = sum
			metrics.KeysGeneratedTotal.WithLabelValues(algorithm).Inc()
		}
		table[namespace] = hashed
	}

	logger.Debug("hashed image sizes",
		zap.Int("namespaces", len(table)),
		zap.String("algorithm", algorithm),
		zap.Int("length", h.length))
	return table, nil
}
