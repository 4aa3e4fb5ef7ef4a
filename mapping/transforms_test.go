package mapping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/connectmap/connector"
)

func transformTemplateMapper() *Mapper {
	tmpl := sourceTemplate()
	tmpl.SupportedTransforms = []string{
		"org.apache.kafka.connect.transforms.ExtractField$Value",
		"org.apache.kafka.connect.transforms.InsertField$Value",
	}
	return newTestMapper(tmpl)
}

func TestTransformFilter_KeepsSupportedChain(t *testing.T) {
	m := transformTemplateMapper()
	result := m.MapConnector(context.Background(), connector.Connector{
		Name: "orders-source",
		Config: smConfig(
			"connector.class", testSMClass,
			"connection.host", "h",
			"transforms", "extract, insert",
			"transforms.extract.type", "org.apache.kafka.connect.transforms.ExtractField$Value",
			"transforms.extract.field", "payload",
			"transforms.insert.type", "org.apache.kafka.connect.transforms.InsertField$Value",
			"transforms.insert.static.field", "source",
		),
	})

	require.True(t, result.Successful(), "errors: %v", result.Errors)
	assert.Equal(t, "extract, insert", result.Config.Get("transforms"))
	assert.Equal(t, "payload", result.Config.Get("transforms.extract.field"))
	assert.Equal(t, "source", result.Config.Get("transforms.insert.static.field"))
	assert.Empty(t, result.Unmapped, "chain keys never count as unmapped")
}

func TestTransformFilter_DropsUnsupportedTransform(t *testing.T) {
	m := transformTemplateMapper()
	result := m.MapConnector(context.Background(), connector.Connector{
		Name: "orders-source",
		Config: smConfig(
			"connector.class", testSMClass,
			"connection.host", "h",
			"transforms", "extract, custom",
			"transforms.extract.type", "org.apache.kafka.connect.transforms.ExtractField$Value",
			"transforms.custom.type", "io.example.smt.MyCustomTransform",
			"transforms.custom.field", "x",
		),
	})

	require.False(t, result.Successful())
	assert.Equal(t, "extract", result.Config.Get("transforms"))
	assert.False(t, result.Config.Has("transforms.custom.type"))
	assert.False(t, result.Config.Has("transforms.custom.field"))
	assert.Contains(t, messages(result.Errors),
		"Transform 'custom' of type 'io.example.smt.MyCustomTransform' is not supported in Fully Managed Connector. "+
			"Potentially Custom SMT can be used.")
}

func TestTransformFilter_MissingType(t *testing.T) {
	m := transformTemplateMapper()
	result := m.MapConnector(context.Background(), connector.Connector{
		Name: "orders-source",
		Config: smConfig(
			"connector.class", testSMClass,
			"connection.host", "h",
			"transforms", "mystery",
			"transforms.mystery.field", "x",
		),
	})

	require.False(t, result.Successful())
	assert.False(t, result.Config.Has("transforms"))
	assert.Contains(t, messages(result.Errors), "Transform 'mystery' has no type specified")
}

func TestTransformFilter_PredicateFollowsTransform(t *testing.T) {
	m := transformTemplateMapper()

	t.Run("kept while a surviving transform references it", func(t *testing.T) {
		result := m.MapConnector(context.Background(), connector.Connector{
			Name: "orders-source",
			Config: smConfig(
				"connector.class", testSMClass,
				"connection.host", "h",
				"transforms", "extract",
				"transforms.extract.type", "org.apache.kafka.connect.transforms.ExtractField$Value",
				"transforms.extract.predicate", "isTombstone",
				"predicates", "isTombstone",
				"predicates.isTombstone.type", "org.apache.kafka.connect.transforms.predicates.RecordIsTombstone",
			),
		})
		require.True(t, result.Successful(), "errors: %v", result.Errors)
		assert.Equal(t, "isTombstone", result.Config.Get("predicates"))
		assert.Equal(t, "org.apache.kafka.connect.transforms.predicates.RecordIsTombstone",
			result.Config.Get("predicates.isTombstone.type"))
	})

	t.Run("orphaned when its transform is dropped", func(t *testing.T) {
		result := m.MapConnector(context.Background(), connector.Connector{
			Name: "orders-source",
			Config: smConfig(
				"connector.class", testSMClass,
				"connection.host", "h",
				"transforms", "custom",
				"transforms.custom.type", "io.example.smt.MyCustomTransform",
				"transforms.custom.predicate", "isTombstone",
				"predicates", "isTombstone",
				"predicates.isTombstone.type", "org.apache.kafka.connect.transforms.predicates.RecordIsTombstone",
			),
		})
		assert.False(t, result.Config.Has("predicates"))
		assert.False(t, result.Config.Has("predicates.isTombstone.type"))
		assert.Contains(t, messages(result.Errors),
			"Predicate 'isTombstone' filtered out because it's associated with unsupported transform 'custom'.")
	})

	t.Run("orphaned when nothing references it", func(t *testing.T) {
		result := m.MapConnector(context.Background(), connector.Connector{
			Name: "orders-source",
			Config: smConfig(
				"connector.class", testSMClass,
				"connection.host", "h",
				"predicates", "lonely",
				"predicates.lonely.type", "org.apache.kafka.connect.transforms.predicates.RecordIsTombstone",
			),
		})
		assert.Contains(t, messages(result.Errors),
			"Predicate 'lonely' filtered out because no surviving transform references it.")
	})
}
