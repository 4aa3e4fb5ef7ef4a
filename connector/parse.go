package connector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/c360/connectmap/errors"
)

// Connector is one (name, config) pair produced by input normalization.
type Connector struct {
	Name   string
	Config *Config
}

// Parse normalizes an input document into an ordered sequence of
// connectors. The following shapes are accepted:
//
//   - {"name": ..., "config": {...}}                    single connector
//   - [{"name": ..., "config": {...}}, ...]             list
//   - [{"outer": {"name": ..., "config": {...}}}, ...]  list of wrappers
//   - {"connectors": {"<name>": {...}, ...}}            export envelope
//   - {"<name>": {"name": ..., "config": {...}}, ...}   keyed map
//   - {"<name>": {"Info": {"name":..., "config":...}}}  wrapped keyed map
//
// Entries that do not carry both name and config are skipped with a
// logged warning; an input yielding zero connectors is an error.
func Parse(data []byte, logger *slog.Logger) ([]Connector, error) {
	if logger == nil {
		logger = slog.Default()
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidInput, "connector", "Parse", "empty document")
	}

	var (
		connectors []Connector
		err        error
	)
	switch trimmed[0] {
	case '[':
		connectors, err = parseList(trimmed, logger)
	case '{':
		connectors, err = parseObject(trimmed, logger)
	default:
		return nil, errors.WrapInvalid(errors.ErrInvalidInput, "connector", "Parse", "detect document shape")
	}
	if err != nil {
		return nil, err
	}
	if len(connectors) == 0 {
		return nil, errors.ErrNoConnectors
	}
	return connectors, nil
}

func parseList(data []byte, logger *slog.Logger) ([]Connector, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.WrapInvalid(err, "connector", "Parse", "decode list")
	}

	var out []Connector
	for i, item := range items {
		members, err := decodeMembers(item)
		if err != nil {
			logger.Warn("Skipping non-object list item", "index", i, "error", err)
			continue
		}
		if conn, ok := connectorFromMembers(members, ""); ok {
			out = append(out, conn)
			continue
		}
		// Wrapper object: each member value is itself a connector.
		for _, m := range members {
			inner, err := decodeMembers(m.value)
			if err != nil {
				logger.Warn("Skipping non-connector entry in list wrapper", "key", m.key, "error", err)
				continue
			}
			if conn, ok := connectorFromMembers(inner, m.key); ok {
				out = append(out, conn)
			} else {
				logger.Warn("Skipping entry missing 'name' and 'config'", "key", m.key)
			}
		}
	}
	return out, nil
}

func parseObject(data []byte, logger *slog.Logger) ([]Connector, error) {
	members, err := decodeMembers(data)
	if err != nil {
		return nil, errors.WrapInvalid(err, "connector", "Parse", "decode object")
	}

	// Export envelope: {"connectors": {...}}
	for _, m := range members {
		if m.key == "connectors" {
			return parseObject(m.value, logger)
		}
	}

	// Single connector object.
	if conn, ok := connectorFromMembers(members, ""); ok {
		return []Connector{conn}, nil
	}

	// Keyed map of connectors.
	var out []Connector
	for _, m := range members {
		inner, err := decodeMembers(m.value)
		if err != nil {
			logger.Warn("Skipping non-object entry", "key", m.key, "error", err)
			continue
		}
		if conn, ok := connectorFromMembers(inner, m.key); ok {
			out = append(out, conn)
			continue
		}
		// One level deeper: {"<name>": {"Info": {"name":..., "config":...}}}
		if info, found := memberValue(inner, "Info"); found {
			wrapped, err := decodeMembers(info)
			if err == nil {
				if conn, ok := connectorFromMembers(wrapped, m.key); ok {
					out = append(out, conn)
					continue
				}
			}
		}
		logger.Warn("Skipping connector entry missing 'name' and 'config'", "key", m.key)
	}
	return out, nil
}

// connectorFromMembers builds a Connector from an object's members when
// it carries a config. The name member wins over the fallback key from
// the enclosing object.
func connectorFromMembers(members []member, fallbackName string) (Connector, bool) {
	rawConfig, found := memberValue(members, "config")
	if !found {
		return Connector{}, false
	}

	name := fallbackName
	if rawName, ok := memberValue(members, "name"); ok {
		var s string
		if err := json.Unmarshal(rawName, &s); err == nil && s != "" {
			name = s
		}
	}
	if name == "" {
		return Connector{}, false
	}

	cfg := NewConfig()
	if err := cfg.UnmarshalJSON(rawConfig); err != nil {
		return Connector{}, false
	}
	return Connector{Name: name, Config: cfg}, true
}

func memberValue(members []member, key string) (json.RawMessage, bool) {
	for _, m := range members {
		if m.key == key {
			return m.value, true
		}
	}
	return nil, false
}

// String implements fmt.Stringer for log output.
func (c Connector) String() string {
	return fmt.Sprintf("connector %q (%d configs)", c.Name, c.Config.Len())
}
