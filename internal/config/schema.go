package config

import (
	"encoding/json"

	pkgconfig "github.com/goran-ethernal/CoinFeed/pkg/config"
	"github.com/invopop/jsonschema"
)

// Schema reflects the JSON schema of the configuration file, using the YAML field names.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:   "yaml",
		ExpandedStruct: true,
		DoNotReference: true,
	}

	schema := r.Reflect(&pkgconfig.Config{})
	schema.Title = "CoinFeed configuration"

	return schema
}

// SchemaJSON returns the indented JSON encoding of Schema.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}
