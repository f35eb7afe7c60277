package utils

import (
	"errors"
	"strings"
	"testing"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"#", ""},
		{"/", ""},
		{"/log_level", "log_level"},
		{"#/tasks/0/by", "tasks[0].by"},
		{"/a~1b/c~0d", "a/b.c~d"},
		{"/tasks/12", "tasks[12]"},
	}
	for _, tt := range tests {
		if got := JSONPointerToPath(tt.input); got != tt.want {
			t.Errorf("JSONPointerToPath(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSchemaIssues(t *testing.T) {
	compiler := jsonschema.NewCompiler()
	schemaJSON := `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"items": {"type": "array", "items": {"type": "integer"}}
		},
		"additionalProperties": false
	}`
	if err := compiler.AddResource("test.json", strings.NewReader(schemaJSON)); err != nil {
		t.Fatal(err)
	}
	schema, err := compiler.Compile("test.json")
	if err != nil {
		t.Fatal(err)
	}

	doc := map[string]interface{}{
		"name":  float64(3),
		"items": []interface{}{float64(1), "two"},
	}
	issues := SchemaIssues(schema.Validate(doc))
	if len(issues) != 2 {
		t.Fatalf("issues: got %v, want 2", issues)
	}
	paths := map[string]bool{}
	for _, issue := range issues {
		paths[issue.Path] = true
	}
	if !paths["name"] || !paths["items[1]"] {
		t.Errorf("paths: got %v", issues)
	}

	if SchemaIssues(nil) != nil {
		t.Error("nil error should yield no issues")
	}
	plain := SchemaIssues(errors.New("boom"))
	if len(plain) != 1 || plain[0].String() != "boom" {
		t.Errorf("plain error: got %v", plain)
	}
}
