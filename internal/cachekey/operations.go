package cachekey

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Param is a single named parameter of an image operation.
type Param struct {
	Name  string
	Value any
}

// Params keeps the parameters of one operation in the order they were given.
// The serializer does not re-sort them.
type Params []Param

// Operations maps an operation name such as "thumbnail" to its parameters.
type Operations map[string]Params

// SizeConfigs maps a namespace (usually a model name) to its named operation sets.
type SizeConfigs map[string]map[string]Operations

// DigestTable has the shape of SizeConfigs with each operation set replaced by its digest.
type DigestTable map[string]map[string]string

// P builds Params from alternating name/value arguments.
// A trailing name without a value is ignored.
func P(pairs ...any) Params {
	params := make(Params, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		params = append(params, Param{Name: fmt.Sprint(pairs[i]), Value: pairs[i+1]})
	}
	return params
}

// Get returns the value of the first parameter called name.
func (p Params) Get(name string) (any, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return nil, false
}

// UnmarshalYAML decodes a mapping node keeping the document order of its keys.
func (p *Params) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*p = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: operation parameters must be a mapping", value.Line)
	}

	params := make(Params, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var v any
		if err := value.Content[i+1].Decode(&v); err != nil {
			return err
		}
		params = append(params, Param{Name: value.Content[i].Value, Value: v})
	}
	*p = params
	return nil
}

// UnmarshalJSON decodes a JSON object keeping the order of its keys.
// Numbers are kept as json.Number so they serialize exactly as written.
func (p *Params) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("operation parameters must be an object, got %v", tok)
	}

	params := Params{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		params = append(params, Param{Name: name, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = params
	return nil
}

// sortedNames returns the operation names in natural key order: integer
// names first by value, then the remaining names as strings.
func sortedNames(ops Operations) []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})
	return names
}

func naturalLess(a, b string) bool {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		if ai != bi {
			return ai < bi
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// scalarString renders strings and numbers. Any other value is not a scalar
// and must not appear in a key.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case int:
		return strconv.FormatInt(int64(x), 10), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return "", false
	}
}
