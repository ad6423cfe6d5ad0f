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

package types

import (
	"strings"

	"github.com/uptrace/bun"
)

// Predicate is a filter condition over entity columns. It renders to a
// WHERE clause schema with bun placeholders and its argument values.
type Predicate interface {
	Filter() *QueryFilter
}

// QueryFilter describes a WHERE clause schema and its argument values.
// It is the rendered form of every Predicate and can be used directly for
// conditions the constructors below do not cover.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// Filter implements Predicate.
func (f *QueryFilter) Filter() *QueryFilter { return f }

// IsEmpty reports whether the filter carries no condition.
func (f *QueryFilter) IsEmpty() bool {
	return f == nil || strings.TrimSpace(f.Schema) == ""
}

func compare(column, op string, value interface{}) Predicate {
	return &QueryFilter{
		Schema: "? " + op + " ?",
		Args:   []interface{}{bun.Ident(column), value},
	}
}

// Eq matches column = value. A nil value matches NULL.
func Eq(column string, value interface{}) Predicate {
	if value == nil {
		return IsNull(column)
	}
	return compare(column, "=", value)
}

// Ne matches column <> value. A nil value matches NOT NULL.
func Ne(column string, value interface{}) Predicate {
	if value == nil {
		return NotNull(column)
	}
	return compare(column, "<>", value)
}

func Gt(column string, value interface{}) Predicate  { return compare(column, ">", value) }
func Gte(column string, value interface{}) Predicate { return compare(column, ">=", value) }
func Lt(column string, value interface{}) Predicate  { return compare(column, "<", value) }
func Lte(column string, value interface{}) Predicate { return compare(column, "<=", value) }

// Like matches column LIKE pattern.
func Like(column string, pattern string) Predicate { return compare(column, "LIKE", pattern) }

// In matches column IN (values...). An empty list matches nothing.
func In(column string, values ...interface{}) Predicate {
	if len(values) == 0 {
		return NewQueryFilter("1 = 0")
	}
	return NewQueryFilter("? IN (?)", bun.Ident(column), bun.In(values))
}

// IsNull matches column IS NULL.
func IsNull(column string) Predicate {
	return NewQueryFilter("? IS NULL", bun.Ident(column))
}

// NotNull matches column IS NOT NULL.
func NotNull(column string) Predicate {
	return NewQueryFilter("? IS NOT NULL", bun.Ident(column))
}

// And matches when every predicate matches. Nil and empty predicates are
// ignored; And() with nothing left matches everything.
func And(predicates ...Predicate) Predicate { return join(" AND ", predicates) }

// Or matches when any predicate matches. Nil and empty predicates are
// ignored; Or() with nothing left matches everything.
func Or(predicates ...Predicate) Predicate { return join(" OR ", predicates) }

// Not negates p.
func Not(p Predicate) Predicate {
	f := render(p)
	if f.IsEmpty() {
		return NewQueryFilter("1 = 0")
	}
	return &QueryFilter{Schema: "NOT (" + f.Schema + ")", Args: f.Args}
}

func join(sep string, predicates []Predicate) Predicate {
	parts := make([]*QueryFilter, 0, len(predicates))
	for _, p := range predicates {
		if f := render(p); !f.IsEmpty() {
			parts = append(parts, f)
		}
	}
	switch len(parts) {
	case 0:
		return &QueryFilter{}
	case 1:
		return parts[0]
	}
	schemas := make([]string, len(parts))
	var args []interface{}
	for i, f := range parts {
		schemas[i] = "(" + f.Schema + ")"
		args = append(args, f.Args...)
	}
	return &QueryFilter{Schema: strings.Join(schemas, sep), Args: args}
}

func render(p Predicate) *QueryFilter {
	if p == nil {
		return nil
	}
	return p.Filter()
}
