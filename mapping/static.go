package mapping

// staticMapping renames one SM property to its FM equivalent.
type staticMapping struct {
	source string
	target string
}

// Hand-curated converter property mappings, scoped by connector type.
// Source connectors emit records (output.*); sink connectors consume
// them (input.*).
var (
	staticSourceMappings = []staticMapping{
		{source: "key.converter", target: "output.key.format"},
		{source: "value.converter", target: "output.data.format"},
	}
	staticSinkMappings = []staticMapping{
		{source: "key.converter", target: "input.key.format"},
		{source: "value.converter", target: "input.data.format"},
	}
)

// converterFormats translates Kafka Connect converter classes to the
// managed platform's format tokens. Unknown converters pass through
// unchanged and fail recommended-value validation downstream.
var converterFormats = map[string]string{
	"io.confluent.connect.avro.AvroConverter":         "AVRO",
	"io.confluent.connect.json.JsonSchemaConverter":   "JSON_SR",
	"io.confluent.connect.protobuf.ProtobufConverter": "PROTOBUF",
	"org.apache.kafka.connect.json.JsonConverter":     "JSON",
}

// applyStatic applies the static mapping table: fixed renames applied
// only to targets not yet mapped and declared by the template.
func applyStatic(r *run) {
	mappings := staticSinkMappings
	if r.tmpl.IsSource() {
		mappings = staticSourceMappings
	}

	for _, m := range mappings {
		value, ok := r.sm.Lookup(m.source)
		if !ok || r.sourceClaimed(m.source) || r.targetClaimed(m.target) {
			continue
		}
		if !r.tmpl.Declares(m.target) {
			continue
		}
		if format, known := converterFormats[value]; known {
			value = format
		}
		if r.setTarget(TierStatic, m.target, value) {
			r.claimSource(m.source)
		}
	}
}
