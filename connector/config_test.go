package connector

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_OrderedSetGet(t *testing.T) {
	cfg := NewConfig()
	cfg.Set("b", "2")
	cfg.Set("a", "1")
	cfg.Set("c", "3")
	cfg.Set("a", "updated") // in-place update keeps position

	assert.Equal(t, []string{"b", "a", "c"}, cfg.Keys())
	assert.Equal(t, "updated", cfg.Get("a"))
	assert.Equal(t, 3, cfg.Len())

	v, ok := cfg.Lookup("missing")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestConfig_Delete(t *testing.T) {
	cfg := NewConfig()
	cfg.Set("a", "1")
	cfg.Set("b", "2")
	cfg.Set("c", "3")

	cfg.Delete("b")
	assert.Equal(t, []string{"a", "c"}, cfg.Keys())
	assert.False(t, cfg.Has("b"))

	cfg.Delete("not-there") // no-op
	assert.Equal(t, 2, cfg.Len())
}

func TestConfig_MarshalPreservesOrder(t *testing.T) {
	cfg := NewConfig()
	cfg.Set("connector.class", "io.acme.Sink")
	cfg.Set("topics", "orders")
	cfg.Set("tasks.max", "4")

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, `{"connector.class":"io.acme.Sink","topics":"orders","tasks.max":"4"}`, string(data))
}

func TestConfig_UnmarshalPreservesOrder(t *testing.T) {
	input := `{"zeta":"z","alpha":"a","mid":"m"}`

	cfg := NewConfig()
	require.NoError(t, json.Unmarshal([]byte(input), cfg))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, cfg.Keys())
}

func TestConfig_RoundTripIsByteStable(t *testing.T) {
	input := `{"connector.class":"io.acme.Sink","tasks.max":"1","topics":"a,b","flush.size":"100"}`

	cfg := NewConfig()
	require.NoError(t, json.Unmarshal([]byte(input), cfg))
	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))

	// Second round trip produces identical bytes.
	again := NewConfig()
	require.NoError(t, json.Unmarshal(out, again))
	out2, err := json.Marshal(again)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(out2))
}

func TestConfig_UnmarshalStringifiesScalars(t *testing.T) {
	input := `{"tasks.max":4,"enabled":true,"ratio":0.25,"nothing":null,"nested":{"a":1},"list":[1,2]}`

	cfg := NewConfig()
	require.NoError(t, json.Unmarshal([]byte(input), cfg))

	assert.Equal(t, "4", cfg.Get("tasks.max"))
	assert.Equal(t, "true", cfg.Get("enabled"))
	assert.Equal(t, "0.25", cfg.Get("ratio"))
	assert.False(t, cfg.Has("nothing"))
	assert.Equal(t, `{"a":1}`, cfg.Get("nested"))
	assert.Equal(t, "[1,2]", cfg.Get("list"))
}

func TestConfig_UnmarshalRejectsNonObject(t *testing.T) {
	cfg := NewConfig()
	assert.Error(t, json.Unmarshal([]byte(`["not","an","object"]`), cfg))
}

func TestConfig_Clone(t *testing.T) {
	cfg := NewConfig()
	cfg.Set("a", "1")
	cfg.Set("b", "2")

	clone := cfg.Clone()
	clone.Set("a", "changed")
	clone.Set("c", "3")

	assert.Equal(t, "1", cfg.Get("a"))
	assert.False(t, cfg.Has("c"))
	assert.Equal(t, []string{"a", "b", "c"}, clone.Keys())
}

func TestConfig_Class(t *testing.T) {
	cfg := NewConfig()
	assert.Empty(t, cfg.Class())
	cfg.Set("connector.class", "io.acme.Source")
	assert.Equal(t, "io.acme.Source", cfg.Class())
}
