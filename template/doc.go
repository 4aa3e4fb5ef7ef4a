// Package template models fully-managed connector templates: the
// declared property set (config_defs), the per-template mapping rules,
// and the supported transform registry.
//
// Templates arrive as JSON documents, either a single template object
// or a wrapper carrying a "templates" array. Catalog loads a directory
// of such documents, validates each against an embedded JSON Schema,
// and indexes the contained templates by connector class. Malformed
// documents are skipped with a logged warning so one bad file never
// blocks a catalog load.
//
// Template files use loose typing for booleans and scalar values
// (required may be true or "true", defaults may be numbers), so the
// flexBool/flexString types absorb that at the decoding boundary and
// the rest of the engine sees Go types.
package template
