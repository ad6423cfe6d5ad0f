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
)

func TestPageRequestDefaults(t *testing.T) {
	p := NewDefaultPageRequest(0, 0)
	assert.Equal(t, 1, p.GetPage())
	assert.Equal(t, 10, p.GetPageSize())
	assert.Equal(t, 0, p.GetOffset())
	assert.Equal(t, []string{"id ASC"}, p.GetOrders())
	assert.Nil(t, p.GetPredicate())

	p = NewPageRequest(3, 25, Eq("status", StatusOpen), []string{"title DESC"})
	assert.Equal(t, 50, p.GetOffset())
	assert.Equal(t, []string{"title DESC"}, p.GetOrders())
	assert.NotNil(t, p.GetPredicate())
}

func TestPaginationPages(t *testing.T) {
	p := NewDefaultPagination[struct{}](1, 10)
	assert.Equal(t, 0, p.Pages())
	assert.Empty(t, p.Items)

	p.Total = 21
	assert.Equal(t, 3, p.Pages())
	p.Total = 20
	assert.Equal(t, 2, p.Pages())
}

func TestFieldsColumnsSorted(t *testing.T) {
	f := Fields{"title": "x", "status": StatusClosed, "client_id": nil}
	assert.Equal(t, []string{"client_id", "status", "title"}, f.Columns())
}

func TestJsonObject(t *testing.T) {
	v, err := JsonObject{"from": "open"}.Value()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"from":"open"}`, v.(string))

	v, err = JsonObject(nil).Value()
	assert.NoError(t, err)
	assert.Nil(t, v)

	var j JsonObject
	assert.NoError(t, j.Scan([]byte(`{"n":1}`)))
	assert.Equal(t, float64(1), j["n"])
	assert.NoError(t, j.Scan(nil))
	assert.Empty(t, j)
	assert.Error(t, j.Scan(3))
}
