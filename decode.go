package treedoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DecodeJSON reads a single JSON document and returns its [Value]. Unlike
// decoding into map[string]any, the token walk preserves object key order.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Null(), nil
		}
		return Value{}, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("json: object key %v is not a string", keyTok)
				}
				valTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				val, err := decodeJSONToken(dec, valTok)
				if err != nil {
					return Value{}, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Value{}, err
			}
			return m.Value(), nil
		case '[':
			seq := NewSequence()
			for dec.More() {
				itemTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				item, err := decodeJSONToken(dec, itemTok)
				if err != nil {
					return Value{}, err
				}
				seq.Append(item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Value{}, err
			}
			return seq.Value(), nil
		default:
			return Value{}, fmt.Errorf("json: unexpected delimiter %q", t)
		}
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(n), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("json: unexpected token %v", tok)
	}
}

// DecodeYAML reads a single YAML document and returns its [Value]. Decoding
// goes through [yaml.Node] so mapping key order survives; plain map decoding
// would scramble it.
func DecodeYAML(r io.Reader) (Value, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return Null(), nil
		}
		return Value{}, err
	}
	seen := make(map[*yaml.Node]struct{})
	return decodeYAMLNode(&node, seen)
}

func decodeYAMLNode(n *yaml.Node, seen map[*yaml.Node]struct{}) (Value, error) {
	if _, ok := seen[n]; ok {
		return Value{}, fmt.Errorf("%w: recursive yaml alias", ErrCyclicValue)
	}
	seen[n] = struct{}{}
	defer delete(seen, n)

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return decodeYAMLNode(n.Content[0], seen)
	case yaml.AliasNode:
		return decodeYAMLNode(n.Alias, seen)
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := decodeYAMLNode(n.Content[i+1], seen)
			if err != nil {
				return Value{}, err
			}
			m.Set(n.Content[i].Value, val)
		}
		return m.Value(), nil
	case yaml.SequenceNode:
		seq := NewSequence()
		for _, item := range n.Content {
			val, err := decodeYAMLNode(item, seen)
			if err != nil {
				return Value{}, err
			}
			seq.Append(val)
		}
		return seq.Value(), nil
	case yaml.ScalarNode:
		return decodeYAMLScalar(n)
	default:
		return Value{}, fmt.Errorf("yaml: unsupported node kind %d", n.Kind)
	}
}

func decodeYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return Value{}, fmt.Errorf("yaml: invalid bool %q: %w", n.Value, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return Value{}, fmt.Errorf("yaml: invalid number %q: %w", n.Value, err)
		}
		return Number(f), nil
	default:
		return String(n.Value), nil
	}
}

// MarshalJSON serializes the value compactly. Cyclic values return
// [ErrCyclicValue]; [Convert] never needs this to succeed — the size
// estimator falls back to a cycle-safe walk when it fails.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	seen := make(map[any]struct{})
	if err := appendJSON(&buf, v, seen); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v Value, seen map[any]struct{}) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		data, err := json.Marshal(v.num)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindString:
		data, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindSequence:
		if _, ok := seen[v.seq]; ok {
			return fmt.Errorf("%w: sequence references itself", ErrCyclicValue)
		}
		seen[v.seq] = struct{}{}
		buf.WriteByte('[')
		for i := range v.seq.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, v.seq.items[i], seen); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		delete(seen, v.seq)
	case KindMapping:
		if _, ok := seen[v.m]; ok {
			return fmt.Errorf("%w: mapping references itself", ErrCyclicValue)
		}
		seen[v.m] = struct{}{}
		buf.WriteByte('{')
		for i, key := range v.m.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(data)
			buf.WriteByte(':')
			if err := appendJSON(buf, v.m.vals[key], seen); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		delete(seen, v.m)
	default:
		return fmt.Errorf("treedoc: unknown kind %v", v.kind)
	}
	return nil
}
