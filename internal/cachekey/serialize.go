// Package cachekey turns image operation sets into deterministic,
// filename-safe cache-key fragments, e.g.
//
//	my_horse.thumbnail+width-100+height-100.jpg
//
// Keys depend only on the content of the operation set, never on map
// iteration order, so they can name cached variants on disk.
package cachekey

import (
	"strings"

	"go-imagine-keys/internal/digest"
)

// Separators are the delimiters placed between operations, between an
// operation name and its parameters, and between a parameter name and its value.
type Separators struct {
	Operations string `yaml:"operations" json:"operations"`
	Params     string `yaml:"params" json:"params"`
	Value      string `yaml:"value" json:"value"`
}

// DefaultSeparators returns ".", "+" and "-".
func DefaultSeparators() Separators {
	return Separators{Operations: ".", Params: "+", Value: "-"}
}

// Merge returns s with every non-empty field of override applied.
func (s Separators) Merge(override Separators) Separators {
	if override.Operations != "" {
		s.Operations = override.Operations
	}
	if override.Params != "" {
		s.Params = override.Params
	}
	if override.Value != "" {
		s.Value = override.Value
	}
	return s
}

// Options control Serialize. The zero value uses the default separators,
// keeps every operation and returns the raw fragment.
type Options struct {
	// Separators override the defaults field by field.
	Separators Separators
	// Digest, when set, replaces a non-empty fragment by its hex digest.
	Digest digest.Algorithm
	// LastOperationOnly reproduces the legacy key format in which only the
	// last operation in sorted order contributes to the fragment.
	LastOperationOnly bool
}

// Serialize builds the cache-key fragment of ops.
//
// Operations are written in natural key order, each as
// <op-sep><name><param-sep><params>, where params are the scalar parameters in
// their given order joined by the param separator as <name><value-sep><value>.
// An empty set yields "" and is never digested. An unsupported digest on a
// non-empty fragment fails with digest.ErrInvalidHashFunction.
func Serialize(ops Operations, opts Options) (string, error) {
	seps := DefaultSeparators().Merge(opts.Separators)

	var b strings.Builder
	for _, name := range sortedNames(ops) {
		if opts.LastOperationOnly {
			b.Reset()
		}
		b.WriteString(seps.Operations)
		b.WriteString(name)
		b.WriteString(seps.Params)
		b.WriteString(joinParams(ops[name], seps))
	}

	result := b.String()
	if opts.Digest == digest.None || result == "" {
		return result, nil
	}
	return digest.Sum(opts.Digest, result)
}

func joinParams(params Params, seps Separators) string {
	parts := make([]string, 0, len(params))
	for _, param := range params {
		value, ok := scalarString(param.Value)
		if !ok {
			continue
		}
		parts = append(parts, param.Name+seps.Value+value)
	}
	return strings.Join(parts, seps.Params)
}

// FileName appends fragment to base and adds the extension, if any.
func FileName(base, fragment, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return base + fragment
	}
	return base + fragment + "." + ext
}
