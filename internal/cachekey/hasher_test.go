package cachekey

import (
	"testing"

	"go-imagine-keys/internal/digest"
	"go-imagine-keys/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfigs() SizeConfigs {
	return SizeConfigs{
		"Post": {
			"thumb": Operations{"thumbnail": P("width", 100, "height", 100)},
			"banner": Operations{
				"thumbnail": P("width", 100),
				"crop":      P("x", 10, "y", "20"),
			},
		},
		"User": {
			"avatar": Operations{"thumbnail": P("width", 100)},
			"none":   Operations{},
		},
	}
}

func TestHashAll(t *testing.T) {
	table, err := HashAll(sampleConfigs(), 8)
	require.NoError(t, err)

	expected := DigestTable{
		"Post": {
			"thumb":  "c0d6fd8e",
			"banner": "33d0cc47",
		},
		"User": {
			"avatar": "16b59b83",
			"none":   "",
		},
	}
	assert.Equal(t, expected, table)
}

func TestHashAllDefaultLength(t *testing.T) {
	table, err := HashAll(sampleConfigs(), 0)
	require.NoError(t, err)
	assert.Len(t, table["Post"]["thumb"], DefaultDigestLength)
}

func TestHashAllTruncation(t *testing.T) {
	tests := []struct {
		name      string
		algorithm digest.Algorithm
		length    int
		expected  int
	}{
		{name: "md5 short", algorithm: digest.MD5, length: 4, expected: 4},
		{name: "md5 full", algorithm: digest.MD5, length: 32, expected: 32},
		{name: "md5 longer than digest", algorithm: digest.MD5, length: 100, expected: 32},
		{name: "sha256 longer than digest", algorithm: digest.SHA256, length: 100, expected: 64},
		{name: "xxhash64", algorithm: digest.XXHash64, length: 12, expected: 12},
		{name: "xxhash64 longer than digest", algorithm: digest.XXHash64, length: 40, expected: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewHasher(tt.algorithm, tt.length, false).HashAll(sampleConfigs())
			require.NoError(t, err)

			for namespace, sizes := range table {
				for name, sum := range sizes {
					if name == "none" {
						assert.Empty(t, sum)
						continue
					}
					assert.Len(t, sum, tt.expected, "%s.%s", namespace, name)
				}
			}
		})
	}
}

func TestHashAllFullDigestMatchesSerialize(t *testing.T) {
	ops := Operations{"thumbnail": P("width", 100, "height", 100)}
	full, err := Serialize(ops, Options{Digest: digest.MD5})
	require.NoError(t, err)

	table, err := HashAll(SizeConfigs{"Post": {"thumb": ops}}, 64)
	require.NoError(t, err)
	assert.Equal(t, full, table["Post"]["thumb"])
}

func TestHashAllDoesNotMutateInput(t *testing.T) {
	configs := sampleConfigs()
	before := sampleConfigs()

	table, err := HashAll(configs, 8)
	require.NoError(t, err)
	assert.Equal(t, before, configs)

	table["Post"]["thumb"] = "changed"
	delete(table, "User")
	assert.Equal(t, before, configs)
}

func TestHashAllLegacyKeys(t *testing.T) {
	table, err := NewHasher(digest.MD5, 8, true).HashAll(sampleConfigs())
	require.NoError(t, err)

	// only ".thumbnail+width-100" survives for the banner
	assert.Equal(t, "16b59b83", table["Post"]["banner"])
	assert.Equal(t, table["User"]["avatar"], table["Post"]["banner"])
}

func TestHashAllInvalidHashFunction(t *testing.T) {
	_, err := NewHasher("not_a_real_function", 8, false).HashAll(sampleConfigs())
	assert.ErrorIs(t, err, digest.ErrInvalidHashFunction)
}

func TestHasherCountsKeys(t *testing.T) {
	counter := metrics.KeysGeneratedTotal.WithLabelValues(digest.SHA1.String())
	before := testutil.ToFloat64(counter)

	_, err := NewHasher(digest.SHA1, 8, false).HashAll(sampleConfigs())
	require.NoError(t, err)
	assert.Equal(t, before+4, testutil.ToFloat64(counter))
}

func TestHasherHash(t *testing.T) {
	h := NewHasher(digest.MD5, 10, false)

	sum, err := h.Hash(Operations{"thumbnail": P("width", 100)})
	require.NoError(t, err)
	assert.Equal(t, "16b59b835d", sum)

	again, err := h.Hash(Operations{"thumbnail": P("width", 100)})
	require.NoError(t, err)
	assert.Equal(t, sum, again)
}
