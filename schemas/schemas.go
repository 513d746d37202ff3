// Package schemas embeds the JSON Schemas shipped with the module.
package schemas

import _ "embed"

// Sections is the schema of a section list.
//
//go:embed sections.schema.json
var Sections string
