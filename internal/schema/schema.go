// Package schema checks archive JSON documents against the embedded schema
// and the manifest invariants the schema cannot express.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pders01/version-archive/internal/archive"
	"github.com/pders01/version-archive/internal/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://upmt.github.io/upmt/schemas/version-archive.json"

//go:embed version_record.schema.json
var schemaSource []byte

// Validator holds the compiled manifest and record schemas
type Validator struct {
	manifest *jsonschema.Schema
	record   *jsonschema.Schema
}

// New compiles the embedded schema
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	manifest, err := compiler.Compile(schemaURL + "#/definitions/manifest")
	if err != nil {
		return nil, fmt.Errorf("compile manifest schema: %w", err)
	}
	record, err := compiler.Compile(schemaURL + "#/definitions/versionRecord")
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}
	return &Validator{manifest: manifest, record: record}, nil
}

// ValidateRecord checks one metadata.json document. dir is the directory it
// was read from and must equal the record's version.
func (v *Validator) ValidateRecord(raw []byte, dir string) error {
	if err := validateAgainstSchema(v.record, raw); err != nil {
		return err
	}
	var rec models.VersionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return err
	}
	if rec.Version != dir {
		return fmt.Errorf("version %q does not match directory %q", rec.Version, dir)
	}
	if rec.Path != rec.Version {
		return fmt.Errorf("path %q does not match version %q", rec.Path, rec.Version)
	}
	return nil
}

// ValidateManifest checks index.json content. It returns every problem found.
func (v *Validator) ValidateManifest(raw []byte) []error {
	if err := validateAgainstSchema(v.manifest, raw); err != nil {
		return []error{err}
	}

	records, err := archive.DecodeManifest(raw)
	if err != nil {
		return []error{err}
	}

	var problems []error
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		if first, ok := seen[rec.Version]; ok {
			problems = append(problems, fmt.Errorf("version %q appears at %d and %d", rec.Version, first, i))
			continue
		}
		seen[rec.Version] = i
		if rec.Path != rec.Version {
			problems = append(problems, fmt.Errorf("entry %d: path %q does not match version %q", i, rec.Path, rec.Version))
		}
	}

	sorted := append([]models.VersionRecord(nil), records...)
	archive.SortNewestFirst(sorted)
	for i := range records {
		if records[i].Version != sorted[i].Version {
			problems = append(problems, fmt.Errorf("manifest is not sorted newest first (entry %d is %q, expected %q)", i, records[i].Version, sorted[i].Version))
			break
		}
	}

	return problems
}

func validateAgainstSchema(schema *jsonschema.Schema, raw []byte) error {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	return schema.Validate(payload)
}

// RenderProblems formats problems one per line
func RenderProblems(name string, problems []error) string {
	lines := []string{fmt.Sprintf("%s: %d problem(s)", name, len(problems))}
	for _, p := range problems {
		lines = append(lines, "- "+p.Error())
	}
	return strings.Join(lines, "\n")
}
