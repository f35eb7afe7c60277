package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/kiki-go/internal/utils"
)

//go:embed export.schema.json
var schemaJSON []byte

const schemaURL = "kiki-export.schema.json"

// Schema returns the JSON Schema describing an export document.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

// Validate checks doc against the export schema and reports every
// violation by its dotted path.
func Validate(doc Document) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("add export schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compile export schema: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	if err := schema.Validate(v); err != nil {
		issues := utils.SchemaIssues(err)
		parts := make([]string, 0, len(issues))
		for _, issue := range issues {
			parts = append(parts, issue.String())
		}
		return fmt.Errorf("invalid export document: %s", strings.Join(parts, "; "))
	}
	return nil
}
