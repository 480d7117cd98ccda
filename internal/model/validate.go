package model

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/*.json
var schemaFS embed.FS

// ValidateExtraction validates a decoded extraction response against
// schema/extraction.schema.json.
func ValidateExtraction(m map[string]interface{}) error {
	return ValidateMapWithSchema("schema/extraction.schema.json", m)
}

// ValidateAnalysis validates a decoded analysis response against
// schema/analysis.schema.json.
func ValidateAnalysis(m map[string]interface{}) error {
	return ValidateMapWithSchema("schema/analysis.schema.json", m)
}

// ValidateMapWithSchema validates a generic map against one of the embedded
// schema files.
func ValidateMapWithSchema(name string, m map[string]interface{}) error {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return err
	}
	schemaLoader := gojsonschema.NewBytesLoader(raw)
	docLoader := gojsonschema.NewGoLoader(m)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
