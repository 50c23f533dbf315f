// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the typed records exchanged with the news backend
// and the write payloads sent back to it.
package model

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Supported UI languages.
const (
	LangBengali = "bn"
	LangEnglish = "en"
)

// Localize returns the side of a bilingual pair matching lang.
// Any language other than English selects the Bengali side.
func Localize(lang, en, bn string) string {
	if lang == LangEnglish {
		return en
	}
	return bn
}

// Identified is implemented by every record with a backend id.
type Identified interface {
	GetID() int64
}

// Record is a backend record that can be turned into its write payload.
type Record[In any] interface {
	Identified
	Input() In
}

var validate = newValidator()

// newValidator reports fields by their JSON names, which are also the
// admin form field names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the struct tags of a record or input.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validating %T: %w", v, err)
	}
	return nil
}

// InvalidFields returns the JSON names of the fields rejected by Validate.
func InvalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

// IDString formats a record id for URLs.
func IDString(r Identified) string {
	return strconv.FormatInt(r.GetID(), 10)
}
