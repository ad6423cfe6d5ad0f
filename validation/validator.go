/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package validation checks entities with go-playground/validator before
// they are written and reports failures as *types.ValidationError keyed by
// column name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/tomoncle/crm/types"
)

// Validator implements repository.Validator.
type Validator struct {
	validate *validator.Validate
}

var (
	defaultValidator *Validator
	defaultOnce      sync.Once
)

// Default returns a shared Validator.
func Default() *Validator {
	defaultOnce.Do(func() { defaultValidator = New() })
	return defaultValidator
}

// New returns a Validator that names fields after their bun column and knows
// the "status" rule and the types.Date type.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(columnName)
	v.RegisterCustomTypeFunc(dateValue, types.Date{})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		status, ok := fl.Field().Interface().(types.Status)
		return ok && status.IsValid()
	})
	return &Validator{validate: v}
}

// columnName maps a struct field to its bun column. Embedded structs keep
// their prefix ("source_") so nested keys join into column names.
func columnName(field reflect.StructField) string {
	tag := field.Tag.Get("bun")
	if tag == "-" {
		return "-"
	}
	name, _, _ := strings.Cut(tag, ",")
	if prefix, ok := strings.CutPrefix(name, "embed:"); ok {
		return prefix
	}
	if name == "" {
		return field.Name
	}
	return name
}

func dateValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(types.Date)
	if !ok || !d.Valid() {
		return nil
	}
	return d.Time()
}

// Validate checks entity against its validate tags.
func (v *Validator) Validate(entity interface{}) error {
	err := v.validate.Struct(entity)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return types.NewValidationError("entity", err.Error())
	}
	result := &types.ValidationError{}
	for _, fe := range fieldErrs {
		result.Add(fieldKey(fe.Namespace()), message(fe))
	}
	return result
}

// fieldKey drops the struct name from a namespace such as
// "Comment.source_.id" and joins embedded prefixes: "source_id".
func fieldKey(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}
	return strings.ReplaceAll(namespace, "_.", "_")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "status":
		return "must be open or closed"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
