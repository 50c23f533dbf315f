// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package admin

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/olegiv/protidin-go/internal/model"
)

// Error message keys attached to form fields.
const (
	ErrRequired = "msg.required"
	ErrInvalid  = "msg.invalid"
)

// Form holds the values shown in an edit form and the per-field errors of
// the last submission.
type Form struct {
	Values url.Values
	Errors map[string]string // Field name to i18n message key
}

// Get returns the first value of field.
func (f *Form) Get(field string) string {
	return f.Values.Get(field)
}

// Checked reports whether value is among the values of field.
func (f *Form) Checked(field, value string) bool {
	return slices.Contains(f.Values[field], value)
}

// Error returns the message key of field's error, if any.
func (f *Form) Error(field string) string {
	return f.Errors[field]
}

// Valid reports whether the form has no errors.
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// NewForm returns the form for a new record, holding field defaults.
func (r *Resource) NewForm() *Form {
	f := &Form{Values: url.Values{}, Errors: map[string]string{}}
	for _, field := range r.Fields {
		if field.Default != "" {
			f.Values.Set(field.Name, field.Default)
		}
	}
	return f
}

// Prefill returns the form for editing a record whose write payload is in.
// Passwords are never prefilled.
func (r *Resource) Prefill(in any) (*Form, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding %s input: %w", r.Name, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s input: %w", r.Name, err)
	}

	f := &Form{Values: url.Values{}, Errors: map[string]string{}}
	for _, field := range r.Fields {
		if field.Kind == FieldPassword {
			continue
		}
		switch v := doc[field.Name].(type) {
		case nil:
		case []any:
			for _, item := range v {
				f.Values.Add(field.Name, scalarString(item))
			}
		default:
			if s := scalarString(v); s != "" {
				f.Values.Set(field.Name, s)
			}
		}
	}
	return f, nil
}

// Submitted decodes posted form values into the JSON document of a write
// payload. The returned form echoes the submission with the errors found;
// the document is only meaningful when the form is valid.
func (r *Resource) Submitted(values url.Values, creating bool) (*Form, map[string]any) {
	f := &Form{Values: url.Values{}, Errors: map[string]string{}}
	doc := make(map[string]any, len(r.Fields))

	for _, field := range r.Fields {
		raw := values[field.Name]
		first := ""
		if len(raw) > 0 {
			first = strings.TrimSpace(raw[0])
		}

		switch field.Kind {
		case FieldCheckbox:
			on := first != "" && first != "false"
			if on {
				f.Values.Set(field.Name, "true")
			}
			doc[field.Name] = on

		case FieldMultiSelect:
			ids := make([]any, 0, len(raw))
			for _, v := range raw {
				v = strings.TrimSpace(v)
				if v == "" {
					continue
				}
				f.Values.Add(field.Name, v)
				if !field.Numeric {
					ids = append(ids, v)
					continue
				}
				id, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					f.Errors[field.Name] = ErrInvalid
					continue
				}
				ids = append(ids, id)
			}
			if len(ids) == 0 && field.IsRequired(creating) {
				f.Errors[field.Name] = ErrRequired
			}
			doc[field.Name] = ids

		default:
			if first != "" && field.Kind != FieldPassword {
				f.Values.Set(field.Name, first)
			}
			if first == "" {
				if field.IsRequired(creating) {
					f.Errors[field.Name] = ErrRequired
				}
				doc[field.Name] = emptyValue(field)
				continue
			}
			v, err := parseScalar(field, first)
			if err != nil {
				f.Errors[field.Name] = ErrInvalid
				continue
			}
			doc[field.Name] = v
		}
	}
	return f, doc
}

// Bind converts a decoded document into the typed write payload and runs
// its validation rules, recording rejected fields on form.
func Bind[In any](form *Form, doc map[string]any) (In, bool) {
	var in In
	data, err := json.Marshal(doc)
	if err == nil {
		err = json.Unmarshal(data, &in)
	}
	if err != nil {
		form.Errors[""] = ErrInvalid
		return in, false
	}

	if err := model.Validate(in); err != nil {
		fields := model.InvalidFields(err)
		if len(fields) == 0 {
			form.Errors[""] = ErrInvalid
		}
		for _, name := range fields {
			if _, ok := form.Errors[name]; !ok {
				form.Errors[name] = ErrInvalid
			}
		}
	}
	return in, form.Valid()
}

func emptyValue(f Field) any {
	switch {
	case f.Kind == FieldNumber:
		return 0
	case f.Kind == FieldSelect && f.Numeric && f.Nullable:
		return nil
	case f.Kind == FieldSelect && f.Numeric:
		return 0
	default:
		return ""
	}
}

func parseScalar(f Field, s string) (any, error) {
	switch {
	case f.Kind == FieldNumber:
		return strconv.Atoi(s)
	case f.Kind == FieldSelect && f.Numeric:
		return strconv.ParseInt(s, 10, 64)
	case f.Kind == FieldJSON:
		if !json.Valid([]byte(s)) {
			return nil, fmt.Errorf("%s: invalid JSON", f.Name)
		}
		return s, nil
	default:
		return s, nil
	}
}

func scalarString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
