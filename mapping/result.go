package mapping

import (
	"bytes"
	"encoding/json"

	"github.com/c360/connectmap/connector"
	"github.com/c360/connectmap/errors"
)

// Result is the outcome of mapping one connector. It is immutable once
// returned.
type Result struct {
	// Name of the connector.
	Name string
	// RunID correlates log lines and metrics for this mapping run.
	RunID string
	// SMConfig is the original config, verbatim, for audit.
	SMConfig *connector.Config
	// Config is the produced FM config.
	Config *connector.Config
	// Errors and Warnings in tier and declaration order.
	Errors   []errors.Entry
	Warnings []errors.Entry
	// Unmapped lists SM keys no tier could place.
	Unmapped []string
}

// Successful reports whether the connector mapped without errors.
// Warnings do not block success.
func (r *Result) Successful() bool {
	return len(r.Errors) == 0
}

// MarshalJSON encodes the result in the report shape consumed by
// operators. Lists are always present, never null, and config key
// order is preserved.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Name            string            `json:"name"`
		SMConfig        *connector.Config `json:"sm_config"`
		Config          *connector.Config `json:"config"`
		MappingErrors   []string          `json:"mapping_errors"`
		MappingWarnings []string          `json:"mapping_warnings"`
		UnmappedConfigs []string          `json:"unmapped_configs"`
	}{
		Name:            r.Name,
		SMConfig:        r.SMConfig,
		Config:          r.Config,
		MappingErrors:   messages(r.Errors),
		MappingWarnings: messages(r.Warnings),
		UnmappedConfigs: r.Unmapped,
	}
	if out.SMConfig == nil {
		out.SMConfig = connector.NewConfig()
	}
	if out.Config == nil {
		out.Config = connector.NewConfig()
	}
	if out.UnmappedConfigs == nil {
		out.UnmappedConfigs = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func messages(entries []errors.Entry) []string {
	msgs := make([]string, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, e.Message)
	}
	return msgs
}
