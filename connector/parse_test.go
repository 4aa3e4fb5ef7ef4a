package connector

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/connectmap/errors"
)

func TestParse_SingleObject(t *testing.T) {
	input := `{"name":"pg-source","config":{"connector.class":"io.debezium.connector.postgresql.PostgresConnector","tasks.max":"1"}}`

	conns, err := Parse([]byte(input), nil)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, "pg-source", conns[0].Name)
	assert.Equal(t, "io.debezium.connector.postgresql.PostgresConnector", conns[0].Config.Class())
}

func TestParse_List(t *testing.T) {
	input := `[
		{"name":"first","config":{"connector.class":"io.acme.A"}},
		{"name":"second","config":{"connector.class":"io.acme.B"}}
	]`

	conns, err := Parse([]byte(input), nil)
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, "first", conns[0].Name)
	assert.Equal(t, "second", conns[1].Name)
}

func TestParse_ListOfWrappers(t *testing.T) {
	input := `[
		{"first":{"name":"first","config":{"connector.class":"io.acme.A"}}},
		{"second":{"config":{"connector.class":"io.acme.B"}}}
	]`

	conns, err := Parse([]byte(input), nil)
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, "first", conns[0].Name)
	// Name falls back to the wrapper key.
	assert.Equal(t, "second", conns[1].Name)
}

func TestParse_ConnectorsEnvelope(t *testing.T) {
	input := `{"connectors":{
		"alpha":{"name":"alpha","config":{"connector.class":"io.acme.A"}},
		"beta":{"config":{"connector.class":"io.acme.B"}}
	}}`

	conns, err := Parse([]byte(input), nil)
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, "alpha", conns[0].Name)
	assert.Equal(t, "beta", conns[1].Name)
	assert.Equal(t, "io.acme.B", conns[1].Config.Class())
}

func TestParse_KeyedMapWithInfoWrapper(t *testing.T) {
	input := `{
		"wrapped":{"Info":{"name":"wrapped","config":{"connector.class":"io.acme.A"}}},
		"plain":{"name":"plain","config":{"connector.class":"io.acme.B"}}
	}`

	conns, err := Parse([]byte(input), nil)
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, "wrapped", conns[0].Name)
	assert.Equal(t, "io.acme.A", conns[0].Config.Class())
	assert.Equal(t, "plain", conns[1].Name)
}

func TestParse_PreservesDeclarationOrder(t *testing.T) {
	input := `{"connectors":{
		"zulu":{"config":{"connector.class":"io.acme.Z"}},
		"alpha":{"config":{"connector.class":"io.acme.A"}},
		"mike":{"config":{"connector.class":"io.acme.M"}}
	}}`

	conns, err := Parse([]byte(input), nil)
	require.NoError(t, err)
	require.Len(t, conns, 3)
	assert.Equal(t, "zulu", conns[0].Name)
	assert.Equal(t, "alpha", conns[1].Name)
	assert.Equal(t, "mike", conns[2].Name)
}

func TestParse_SkipsEntriesWithoutConfig(t *testing.T) {
	input := `{
		"good":{"config":{"connector.class":"io.acme.A"}},
		"bad":{"state":"RUNNING"}
	}`

	conns, err := Parse([]byte(input), nil)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, "good", conns[0].Name)
}

func TestParse_NameMemberWinsOverKey(t *testing.T) {
	input := `{"outer-key":{"name":"inner-name","config":{"connector.class":"io.acme.A"}}}`

	conns, err := Parse([]byte(input), nil)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, "inner-name", conns[0].Name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty document", "", nil},
		{"whitespace only", "   \n\t", nil},
		{"scalar document", `"just a string"`, nil},
		{"no connectors", `{"connectors":{}}`, errors.ErrNoConnectors},
		{"all entries invalid", `{"a":{"state":"RUNNING"}}`, errors.ErrNoConnectors},
		{"malformed json", `{"name":`, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.input), nil)
			require.Error(t, err)
			if test.want != nil {
				assert.True(t, stderrors.Is(err, test.want))
			}
		})
	}
}
