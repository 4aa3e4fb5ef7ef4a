package template

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyDefinition_FlexibleDecoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		required bool
		internal bool
		def      string
	}{
		{
			name:     "boolean flags",
			input:    `{"name":"a","required":true,"internal":false,"default_value":"x"}`,
			required: true,
			def:      "x",
		},
		{
			name:     "string flags",
			input:    `{"name":"a","required":"true","internal":"TRUE","default_value":"x"}`,
			required: true,
			internal: true,
			def:      "x",
		},
		{
			name:  "string false",
			input: `{"name":"a","required":"false"}`,
		},
		{
			name:  "numeric default",
			input: `{"name":"a","default_value":3}`,
			def:   "3",
		},
		{
			name:  "float default",
			input: `{"name":"a","default_value":0.5}`,
			def:   "0.5",
		},
		{
			name:  "boolean default",
			input: `{"name":"a","default_value":false}`,
			def:   "false",
		},
		{
			name:  "null default",
			input: `{"name":"a","default_value":null}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var def PropertyDefinition
			require.NoError(t, json.Unmarshal([]byte(test.input), &def))
			assert.Equal(t, test.required, bool(def.Required))
			assert.Equal(t, test.internal, bool(def.Internal))
			assert.Equal(t, test.def, string(def.DefaultValue))
		})
	}
}

func TestPropertyDefinition_Accepts(t *testing.T) {
	def := PropertyDefinition{
		Name:              "input.key.format",
		RecommendedValues: []string{"AVRO", "JSON_SR", "PROTOBUF", "STRING"},
	}

	assert.True(t, def.Accepts("AVRO"))
	assert.True(t, def.Accepts("avro"), "case variants of enum tokens are accepted")
	assert.False(t, def.Accepts("BYTES"))

	unconstrained := PropertyDefinition{Name: "topics"}
	assert.False(t, unconstrained.Constrained())
	assert.True(t, unconstrained.Accepts("anything"))
}

func TestTemplate_IsSource(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     Template
		expected bool
	}{
		{"explicit source", Template{ConnectorType: TypeSource}, true},
		{"explicit sink", Template{ConnectorType: TypeSink}, false},
		{"sink by class name", Template{ConnectorClass: "io.confluent.connect.jdbc.JdbcSinkConnector"}, false},
		{"source by class name", Template{ConnectorClass: "io.confluent.connect.jdbc.JdbcSourceConnector"}, true},
		{"no indicator defaults to source", Template{ConnectorClass: "io.acme.Thing"}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.tmpl.IsSource())
		})
	}
}

func TestTemplate_PluginType(t *testing.T) {
	withID := Template{TemplateID: "PostgresCdcSourceV2", ConnectorClass: "io.debezium.connector.postgresql.PostgresConnector"}
	assert.Equal(t, "PostgresCdcSourceV2", withID.PluginType())

	withoutID := Template{ConnectorClass: "io.acme.Sink"}
	assert.Equal(t, "io.acme.Sink", withoutID.PluginType())
}

func TestTemplate_Definition(t *testing.T) {
	tmpl := Template{ConfigDefs: []PropertyDefinition{
		{Name: "connection.url", Required: true},
		{Name: "topics"},
	}}

	def, ok := tmpl.Definition("connection.url")
	require.True(t, ok)
	assert.True(t, bool(def.Required))

	_, ok = tmpl.Definition("missing")
	assert.False(t, ok)
	assert.True(t, tmpl.Declares("topics"))
	assert.False(t, tmpl.Declares("missing"))
}
