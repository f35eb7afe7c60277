// Package export renders the task list as a structured document.
//
// The document shape is the same in every format:
//
//	schema_version: 1
//	tasks:
//	  - type: deadline
//	    done: false
//	    description: return book
//	    by: 2025-10-15
//
// Dates use yyyy-mm-dd. Fields that do not belong to a task's type are
// omitted.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/kiki-go/internal/dates"
	"github.com/nibzard/kiki-go/internal/task"
)

// SchemaVersion is the version written into every document.
const SchemaVersion = 1

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats in help order.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat accepts a format name case-insensitively. "yml" is an alias
// for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected %s)", s, FormatNames())
	}
}

// FormatNames joins Formats with "|" for help and error text.
func FormatNames() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

// Document is the exported task list.
type Document struct {
	SchemaVersion int      `json:"schema_version" yaml:"schema_version" toml:"schema_version"`
	Tasks         []Record `json:"tasks" yaml:"tasks" toml:"tasks"`
}

// Record is one exported task.
type Record struct {
	Type        string `json:"type" yaml:"type" toml:"type"`
	Done        bool   `json:"done" yaml:"done" toml:"done"`
	Description string `json:"description" yaml:"description" toml:"description"`
	By          string `json:"by,omitempty" yaml:"by,omitempty" toml:"by,omitempty"`
	From        string `json:"from,omitempty" yaml:"from,omitempty" toml:"from,omitempty"`
	To          string `json:"to,omitempty" yaml:"to,omitempty" toml:"to,omitempty"`
}

// FromTasks builds a document from tasks in list order.
func FromTasks(tasks []*task.Task) Document {
	doc := Document{SchemaVersion: SchemaVersion, Tasks: make([]Record, 0, len(tasks))}
	for _, t := range tasks {
		rec := Record{
			Type:        t.Kind().String(),
			Done:        t.IsDone(),
			Description: t.Description(),
		}
		switch t.Kind() {
		case task.KindDeadline:
			rec.By = dates.FormatISO(t.By())
		case task.KindEvent:
			rec.From = dates.FormatISO(t.From())
			rec.To = dates.FormatISO(t.To())
		}
		doc.Tasks = append(doc.Tasks, rec)
	}
	return doc
}

// Write encodes doc to w in format.
func Write(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
