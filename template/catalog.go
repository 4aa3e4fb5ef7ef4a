package template

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c360/connectmap/errors"
)

//go:embed fm_template.schema.json
var templateSchema []byte

// Catalog indexes FM templates by connector class. It is read-only
// after loading and safe for concurrent use.
type Catalog struct {
	logger    *slog.Logger
	schema    *gojsonschema.Schema
	templates map[string]*Template
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithLogger sets the catalog's logger.
func WithLogger(logger *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// NewCatalog returns an empty catalog.
func NewCatalog(opts ...CatalogOption) (*Catalog, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(templateSchema))
	if err != nil {
		return nil, errors.Wrap(err, "catalog", "NewCatalog", "compile template schema")
	}
	c := &Catalog{
		logger:    slog.Default(),
		schema:    schema,
		templates: make(map[string]*Template),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Register adds a template to the index. The first template registered
// for a connector class wins; later ones are skipped with a warning.
func (c *Catalog) Register(t *Template) {
	if t.ConnectorClass == "" {
		c.logger.Warn("Skipping template without connector class", "template_id", t.TemplateID)
		return
	}
	if existing, ok := c.templates[t.ConnectorClass]; ok {
		c.logger.Warn("Duplicate template for connector class, keeping first",
			"connector_class", t.ConnectorClass,
			"kept", existing.TemplateID,
			"skipped", t.TemplateID)
		return
	}
	c.templates[t.ConnectorClass] = t
}

// LoadDir loads every *.json file in dir. Each document is validated
// against the embedded template schema; invalid or unreadable files
// are skipped with a logged warning so one bad file never blocks the
// load. Returns the number of templates registered.
func (c *Catalog) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.WrapFatal(err, "catalog", "LoadDir", "read template directory")
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		n, err := c.loadFile(path)
		if err != nil {
			c.logger.Warn("Skipping template file", "path", path, "error", err)
			continue
		}
		loaded += n
	}

	c.logger.Info("Loaded template catalog", "dir", dir, "templates", loaded, "classes", len(c.templates))
	return loaded, nil
}

// loadFile parses one template document, which is either a single
// template object or a wrapper with a "templates" array.
func (c *Catalog) loadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errors.ErrInvalidTemplate, err)
	}
	if !result.Valid() {
		desc := result.Errors()
		detail := ""
		if len(desc) > 0 {
			detail = fmt.Sprintf("%s: %s", desc[0].Field(), desc[0].Description())
		}
		return 0, fmt.Errorf("%w: %s", errors.ErrInvalidTemplate, detail)
	}

	var wrapper struct {
		Templates []*Template `json:"templates"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Templates) > 0 {
		for _, t := range wrapper.Templates {
			c.Register(t)
		}
		return len(wrapper.Templates), nil
	}

	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return 0, fmt.Errorf("%w: %w", errors.ErrInvalidTemplate, err)
	}
	c.Register(&t)
	return 1, nil
}

// Resolve returns the template for a connector class.
func (c *Catalog) Resolve(connectorClass string) (*Template, error) {
	t, ok := c.templates[connectorClass]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrTemplateNotFound, connectorClass)
	}
	return t, nil
}

// Classes returns the indexed connector classes, sorted.
func (c *Catalog) Classes() []string {
	classes := make([]string, 0, len(c.templates))
	for class := range c.templates {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// Len returns the number of indexed templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}
