package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/connectmap/errors"
)

func writeTemplateFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const jdbcSourceTemplate = `{
	"template_id": "MySqlSource",
	"connector.class": "io.confluent.connect.jdbc.JdbcSourceConnector",
	"connector_type": "SOURCE",
	"config_defs": [
		{"name": "connection.url", "required": true, "description": "JDBC connection URL"},
		{"name": "table.whitelist", "required": "false"}
	],
	"connector_configs": [
		{"name": "output.data.format", "value": "AVRO"}
	]
}`

func TestCatalog_LoadDirAndResolve(t *testing.T) {
	dir := t.TempDir()
	writeTemplateFile(t, dir, "jdbc_source.json", jdbcSourceTemplate)
	writeTemplateFile(t, dir, "notes.txt", "not a template")

	catalog, err := NewCatalog()
	require.NoError(t, err)

	loaded, err := catalog.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)

	tmpl, err := catalog.Resolve("io.confluent.connect.jdbc.JdbcSourceConnector")
	require.NoError(t, err)
	assert.Equal(t, "MySqlSource", tmpl.TemplateID)
	require.Len(t, tmpl.ConfigDefs, 2)
	assert.True(t, bool(tmpl.ConfigDefs[0].Required))
	assert.False(t, bool(tmpl.ConfigDefs[1].Required))
	require.Len(t, tmpl.MappingRules, 1)
	assert.Equal(t, KindValue, tmpl.MappingRules[0].Kind())
}

func TestCatalog_LoadDir_TemplatesArray(t *testing.T) {
	dir := t.TempDir()
	writeTemplateFile(t, dir, "bundle.json", `{
		"templates": [
			{"template_id": "A", "connector.class": "io.acme.A"},
			{"template_id": "B", "connector.class": "io.acme.B"}
		]
	}`)

	catalog, err := NewCatalog()
	require.NoError(t, err)
	loaded, err := catalog.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, []string{"io.acme.A", "io.acme.B"}, catalog.Classes())
}

func TestCatalog_LoadDir_SkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeTemplateFile(t, dir, "good.json", jdbcSourceTemplate)
	writeTemplateFile(t, dir, "bad.json", `{"no_connector_class": true}`)
	writeTemplateFile(t, dir, "broken.json", `{not json`)

	catalog, err := NewCatalog()
	require.NoError(t, err)
	loaded, err := catalog.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)
	assert.Equal(t, 1, catalog.Len())
}

func TestCatalog_LoadDir_MissingDirectory(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)
	_, err = catalog.LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestCatalog_Resolve_NotFound(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	_, err = catalog.Resolve("io.acme.Unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTemplateNotFound)
}

func TestCatalog_Register_FirstWins(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	catalog.Register(&Template{TemplateID: "first", ConnectorClass: "io.acme.A"})
	catalog.Register(&Template{TemplateID: "second", ConnectorClass: "io.acme.A"})
	catalog.Register(&Template{TemplateID: "nameless"}) // no class, skipped

	tmpl, err := catalog.Resolve("io.acme.A")
	require.NoError(t, err)
	assert.Equal(t, "first", tmpl.TemplateID)
	assert.Equal(t, 1, catalog.Len())
}
