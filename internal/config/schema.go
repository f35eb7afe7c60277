package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/kiki-go/internal/utils"
)

//go:embed config.schema.json
var schemaJSON []byte

const schemaURL = "kiki-config.schema.json"

// Schema returns the JSON Schema that config files must satisfy.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add config schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	return schema, nil
}

// validateRaw checks a decoded TOML document against the schema.
// The document is round-tripped through JSON so TOML integers and
// datetimes reach the validator as plain JSON values.
func validateRaw(path string, raw map[string]interface{}) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal config for validation: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal config for validation: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		fileErr := &FileError{File: path}
		for _, issue := range utils.SchemaIssues(err) {
			fileErr.Issues = append(fileErr.Issues, &ValidationError{Path: issue.Path, Message: issue.Message})
		}
		return fileErr
	}
	return nil
}
