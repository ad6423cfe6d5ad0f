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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

func toSQL(p Predicate) string {
	f := p.Filter()
	return schema.NewFormatter(sqlitedialect.New()).FormatQuery(f.Schema, f.Args...)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		p    Predicate
		want string
	}{
		{"eq", Eq("user_id", 7), `"user_id" = 7`},
		{"eq nil", Eq("client_id", nil), `"client_id" IS NULL`},
		{"ne", Ne("title", "x"), `"title" <> 'x'`},
		{"ne nil", Ne("client_id", nil), `"client_id" IS NOT NULL`},
		{"gt", Gt("id", 1), `"id" > 1`},
		{"gte", Gte("id", 1), `"id" >= 1`},
		{"lt", Lt("id", 1), `"id" < 1`},
		{"lte", Lte("id", 1), `"id" <= 1`},
		{"like", Like("name", "ac%"), `"name" LIKE 'ac%'`},
		{"in", In("id", 1, 2, 3), `"id" IN (1, 2, 3)`},
		{"in empty", In("id"), `1 = 0`},
		{"and", And(Eq("a", 1), Eq("b", 2)), `("a" = 1) AND ("b" = 2)`},
		{"or", Or(Eq("a", 1), IsNull("b")), `("a" = 1) OR ("b" IS NULL)`},
		{"and single", And(nil, Eq("a", 1), &QueryFilter{}), `"a" = 1`},
		{"not", Not(Eq("a", 1)), `NOT ("a" = 1)`},
		{"not empty", Not(nil), `1 = 0`},
		{"raw", NewQueryFilter("length(?) > ?", bun.Ident("name"), 3), `length("name") > 3`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toSQL(tt.p))
		})
	}
}

func TestEmptyCompositeMatchesEverything(t *testing.T) {
	assert.True(t, And().Filter().IsEmpty())
	assert.True(t, Or(nil, nil).Filter().IsEmpty())

	var f *QueryFilter
	assert.True(t, f.IsEmpty())
}
