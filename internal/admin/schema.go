// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package admin describes the admin console's resources declaratively: the
// columns of each list table and the fields of each edit form. The generic
// CRUD handler renders and decodes every resource from these descriptions.
package admin

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed resources.yaml
var resourcesYAML []byte

// FieldKind selects how a form field is rendered and decoded.
type FieldKind string

// Form field kinds.
const (
	FieldText        FieldKind = "text"
	FieldTextarea    FieldKind = "textarea"
	FieldURL         FieldKind = "url"
	FieldEmail       FieldKind = "email"
	FieldPassword    FieldKind = "password"
	FieldNumber      FieldKind = "number"
	FieldColor       FieldKind = "color"
	FieldJSON        FieldKind = "json"
	FieldCheckbox    FieldKind = "checkbox"
	FieldSelect      FieldKind = "select"
	FieldMultiSelect FieldKind = "multiselect"
)

var fieldKinds = []FieldKind{
	FieldText, FieldTextarea, FieldURL, FieldEmail, FieldPassword, FieldNumber,
	FieldColor, FieldJSON, FieldCheckbox, FieldSelect, FieldMultiSelect,
}

// ColumnKind selects how a table cell is derived from a record.
type ColumnKind string

// Table column kinds.
const (
	ColumnID        ColumnKind = "id"
	ColumnText      ColumnKind = "text"
	ColumnLocalized ColumnKind = "localized"
	ColumnBool      ColumnKind = "bool"
	ColumnImage     ColumnKind = "image"
	ColumnEnum      ColumnKind = "enum"
	ColumnCount     ColumnKind = "count"
	ColumnRefs      ColumnKind = "refs"
	ColumnDateTime  ColumnKind = "datetime"
	ColumnFlags     ColumnKind = "flags"
)

var columnKinds = []ColumnKind{
	ColumnID, ColumnText, ColumnLocalized, ColumnBool, ColumnImage, ColumnEnum,
	ColumnCount, ColumnRefs, ColumnDateTime, ColumnFlags,
}

// Field is one input of a resource form. Name is the JSON key of the
// resource's write payload.
type Field struct {
	Name             string    `yaml:"name"`
	Kind             FieldKind `yaml:"kind"`
	Label            string    `yaml:"label"` // i18n key
	Required         bool      `yaml:"required"`
	RequiredOnCreate bool      `yaml:"required_on_create"`
	Options          string    `yaml:"options"`  // Option source for select kinds
	Numeric          bool      `yaml:"numeric"`  // Option values are record ids
	Nullable         bool      `yaml:"nullable"` // An empty select submits null
	Blank            string    `yaml:"blank"`    // i18n key of the empty choice
	Default          string    `yaml:"default"`  // Value on a new form
	Hint             string    `yaml:"hint"`
	Rows             int       `yaml:"rows"`
	Section          string    `yaml:"section"`
}

// IsRequired reports whether the field must be filled in. Password fields
// are only required when creating.
func (f Field) IsRequired(creating bool) bool {
	return f.Required || (creating && f.RequiredOnCreate)
}

// InputType returns the HTML input type for single-line kinds.
func (f Field) InputType() string {
	switch f.Kind {
	case FieldURL, FieldEmail, FieldPassword, FieldNumber, FieldColor:
		return string(f.Kind)
	default:
		return "text"
	}
}

// BlankLabel returns the i18n key of a select's empty choice.
func (f Field) BlankLabel() string {
	if f.Blank != "" {
		return f.Blank
	}
	if f.Nullable {
		return "field.none"
	}
	return "option.select"
}

// Flag is one badge of a flags column.
type Flag struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
	Tone  string `yaml:"tone"`
}

// Column is one column of a resource list table. Key is a dotted path into
// the record's JSON form.
type Column struct {
	Key    string     `yaml:"key"`
	Kind   ColumnKind `yaml:"kind"`
	Label  string     `yaml:"label"`
	Sub    string     `yaml:"sub"`    // Key read from each element of a refs column
	Prefix string     `yaml:"prefix"` // i18n key prefix of an enum column
	Empty  string     `yaml:"empty"`  // i18n key shown for a missing value
	Flags  []Flag     `yaml:"flags"`
}

// Option is one choice of a select field.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
	Group string `yaml:"-"`
}

// Resource is the admin description of one backend collection.
type Resource struct {
	Name      string   `yaml:"name"`
	Title     string   `yaml:"title"`
	Heading   string   `yaml:"heading"`
	Singleton bool     `yaml:"singleton"`
	Columns   []Column `yaml:"columns"`
	Fields    []Field  `yaml:"fields"`
}

// Path returns the admin URL of the resource list.
func (r *Resource) Path() string {
	return "/admin/" + r.Name
}

// Field returns the field called name.
func (r *Resource) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Section is a titled run of consecutive fields.
type Section struct {
	Title  string
	Fields []Field
}

// Sections groups consecutive fields sharing a section title.
func (r *Resource) Sections() []Section {
	var out []Section
	for _, f := range r.Fields {
		if len(out) == 0 || out[len(out)-1].Title != f.Section {
			out = append(out, Section{Title: f.Section})
		}
		out[len(out)-1].Fields = append(out[len(out)-1].Fields, f)
	}
	return out
}

// Schema is the full set of admin resources.
type Schema struct {
	Options   map[string][]Option `yaml:"options"`
	Resources []*Resource         `yaml:"resources"`
}

// Load parses the embedded resource descriptions.
func Load() (*Schema, error) {
	return Parse(resourcesYAML)
}

// MustLoad is Load for package initialization.
func MustLoad() *Schema {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

// Parse decodes and checks a schema document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing admin schema: %w", err)
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Resource returns the resource called name.
func (s *Schema) Resource(name string) (*Resource, bool) {
	for _, r := range s.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// StaticOptions returns the fixed choices of source, if the schema defines
// them.
func (s *Schema) StaticOptions(source string) ([]Option, bool) {
	opts, ok := s.Options[source]
	return opts, ok
}

func (s *Schema) check() error {
	seen := make(map[string]bool, len(s.Resources))
	for _, r := range s.Resources {
		if r.Name == "" {
			return fmt.Errorf("admin schema: resource without name")
		}
		if seen[r.Name] {
			return fmt.Errorf("admin schema: duplicate resource %q", r.Name)
		}
		seen[r.Name] = true

		for _, f := range r.Fields {
			if !slices.Contains(fieldKinds, f.Kind) {
				return fmt.Errorf("admin schema: %s.%s: unknown field kind %q", r.Name, f.Name, f.Kind)
			}
			if (f.Kind == FieldSelect || f.Kind == FieldMultiSelect) && f.Options == "" {
				return fmt.Errorf("admin schema: %s.%s: select without options", r.Name, f.Name)
			}
		}
		for _, c := range r.Columns {
			if !slices.Contains(columnKinds, c.Kind) {
				return fmt.Errorf("admin schema: %s: unknown column kind %q", r.Name, c.Kind)
			}
		}
	}
	return nil
}
