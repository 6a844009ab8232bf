package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name      string
		algorithm Algorithm
		input     string
		expected  string
	}{
		{
			name:      "md5",
			algorithm: MD5,
			input:     "hello",
			expected:  "5d41402abc4b2a76b9719d911017c592",
		},
		{
			name:      "sha1",
			algorithm: SHA1,
			input:     "hello",
			expected:  "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d",
		},
		{
			name:      "sha256",
			algorithm: SHA256,
			input:     "hello",
			expected:  "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		},
		{
			name:      "xxhash64 of empty string",
			algorithm: XXHash64,
			input:     "",
			expected:  "ef46db3751d8e999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, err := Sum(tt.algorithm, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sum)
			assert.Len(t, sum, tt.algorithm.Len())
		})
	}
}

func TestSumInvalidAlgorithm(t *testing.T) {
	for _, a := range []Algorithm{None, "not_a_real_function", "MD5 "} {
		_, err := Sum(a, "payload")
		assert.ErrorIs(t, err, ErrInvalidHashFunction, "algorithm %q", a)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Algorithm
		wantErr  bool
	}{
		{name: "lowercase", input: "md5", expected: MD5},
		{name: "mixed case with spaces", input: "  SHA256 ", expected: SHA256},
		{name: "xxhash", input: "xxhash64", expected: XXHash64},
		{name: "empty means none", input: "", expected: None},
		{name: "unknown", input: "not_a_real_function", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHashFunction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a)
		})
	}
}

func TestLen(t *testing.T) {
	assert.Equal(t, 32, MD5.Len())
	assert.Equal(t, 40, SHA1.Len())
	assert.Equal(t, 64, SHA256.Len())
	assert.Equal(t, 16, XXHash64.Len())
	assert.Equal(t, 0, None.Len())
	assert.Equal(t, 0, Algorithm("crc").Len())
	assert.Equal(t, "none", None.String())
}

func TestMemo(t *testing.T) {
	m := NewMemo(MD5)
	assert.Equal(t, MD5, m.Algorithm())

	first, err := m.Sum("hello")
	require.NoError(t, err)
	second, err := m.Sum("hello")
	require.NoError(t, err)

	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, m.Len())

	_, err = m.Sum("world")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
}

func TestMemoInvalidAlgorithm(t *testing.T) {
	m := NewMemo("bogus")
	_, err := m.Sum("hello")
	assert.ErrorIs(t, err, ErrInvalidHashFunction)
	assert.Equal(t, 0, m.Len())
}
