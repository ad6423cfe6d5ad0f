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

package repository

import (
	"database/sql"
	"encoding"
	"fmt"
	"math"
	"reflect"

	"github.com/tomoncle/crm/types"
)

var (
	scannerType         = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// coerceFields converts every value of fields to the Go type of its column.
// Columns must already be known to the table.
func (r *baseRepositoryImpl[T]) coerceFields(fields types.Fields) (types.Fields, *types.ValidationError) {
	out := make(types.Fields, len(fields))
	var invalid *types.ValidationError
	for _, col := range fields.Columns() {
		v, err := coerce(fields[col], r.table.FieldMap[col].StructField.Type)
		if err != nil {
			invalid = addField(invalid, col, err.Error())
			continue
		}
		out[col] = v
	}
	return out, invalid
}

// coerce returns value as an instance of target. Strings go through
// encoding.TextUnmarshaler, other foreign values through sql.Scanner, and
// numbers convert within their kind as long as no precision is lost.
func coerce(value interface{}, target reflect.Type) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	src := reflect.ValueOf(value)
	if src.Kind() == reflect.Ptr {
		if src.IsNil() {
			return nil, nil
		}
		return coerce(src.Elem().Interface(), target)
	}
	if target.Kind() == reflect.Ptr {
		return coerce(value, target.Elem())
	}
	if src.Type() == target {
		return value, nil
	}

	switch {
	case isInt(target.Kind()) && isInt(src.Kind()),
		isFloat(target.Kind()) && (isInt(src.Kind()) || isFloat(src.Kind())),
		target.Kind() == src.Kind() && src.Type().ConvertibleTo(target):
		return src.Convert(target).Interface(), nil
	case isInt(target.Kind()) && isFloat(src.Kind()):
		if f := src.Float(); f == math.Trunc(f) {
			return reflect.ValueOf(int64(f)).Convert(target).Interface(), nil
		}
		return nil, fmt.Errorf("expected a whole number, got %v", value)
	}

	ptr := reflect.New(target)
	if s, ok := value.(string); ok && ptr.Type().Implements(textUnmarshalerType) {
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, err
		}
		return ptr.Elem().Interface(), nil
	}
	if ptr.Type().Implements(scannerType) {
		if err := ptr.Interface().(sql.Scanner).Scan(value); err != nil {
			return nil, err
		}
		return ptr.Elem().Interface(), nil
	}
	return nil, fmt.Errorf("expected %s, got %T", target, value)
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
