package connector

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Config is an ordered mapping of configuration property names to
// string values. Insertion order is preserved through JSON marshal and
// unmarshal so that mapping output is byte-stable for identical input.
//
// Config is not safe for concurrent mutation; the mapping engine treats
// SM configs as read-only for the duration of a run.
type Config struct {
	keys   []string
	values map[string]string
}

// NewConfig returns an empty ordered config.
func NewConfig() *Config {
	return &Config{values: make(map[string]string)}
}

// Set stores value under key, appending the key to the order on first
// write and updating in place on subsequent writes.
func (c *Config) Set(key, value string) {
	if c.values == nil {
		c.values = make(map[string]string)
	}
	if _, exists := c.values[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get returns the value for key, or the empty string when absent.
func (c *Config) Get(key string) string {
	return c.values[key]
}

// Lookup returns the value for key and whether it is present.
func (c *Config) Lookup(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key is present.
func (c *Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Delete removes key, preserving the relative order of remaining keys.
func (c *Config) Delete(key string) {
	if _, ok := c.values[key]; !ok {
		return
	}
	delete(c.values, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The returned slice is a
// copy.
func (c *Config) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of entries.
func (c *Config) Len() int {
	return len(c.keys)
}

// Class returns the connector.class value, or the empty string.
func (c *Config) Class() string {
	return c.Get("connector.class")
}

// Clone returns a deep copy preserving key order.
func (c *Config) Clone() *Config {
	out := NewConfig()
	for _, k := range c.keys {
		out.Set(k, c.values[k])
	}
	return out
}

// MarshalJSON encodes the config as a JSON object in insertion order.
func (c *Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving member order. Scalar
// values of any JSON type are stringified (Kafka Connect treats every
// config value as text); null members are skipped; nested objects and
// arrays are kept as their compact JSON encoding.
func (c *Config) UnmarshalJSON(data []byte) error {
	members, err := decodeMembers(data)
	if err != nil {
		return err
	}
	c.keys = nil
	c.values = make(map[string]string, len(members))
	for _, m := range members {
		s, ok, err := stringifyValue(m.value)
		if err != nil {
			return fmt.Errorf("value for %q: %w", m.key, err)
		}
		if !ok {
			continue // null member
		}
		c.Set(m.key, s)
	}
	return nil
}

// member is one ordered key/value pair of a JSON object.
type member struct {
	key   string
	value json.RawMessage
}

// decodeMembers decodes a JSON object into its members in declaration
// order. encoding/json map decoding would lose ordering, so this walks
// the token stream instead.
func decodeMembers(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var members []member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: raw})
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return members, nil
}

// stringifyValue renders a raw JSON value as config text. Returns
// ok=false for JSON null.
func stringifyValue(raw json.RawMessage) (string, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false, fmt.Errorf("empty value")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case 'n': // null
		return "", false, nil
	case '{', '[':
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err != nil {
			return "", false, err
		}
		return compact.String(), true, nil
	default: // number, true, false
		return string(trimmed), true, nil
	}
}
