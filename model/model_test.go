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

package model_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/crm/database"
	"github.com/tomoncle/crm/internal/testdb"
	"github.com/tomoncle/crm/model"
	"github.com/tomoncle/crm/types"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

func TestLeadDaysUntilContact(t *testing.T) {
	now := time.Date(2024, time.June, 10, 17, 45, 0, 0, time.UTC)

	lead := &model.Lead{ContactDate: types.DateOf(2024, time.June, 14)}
	days, ok := lead.DaysUntilContact(now)
	assert.True(t, ok)
	assert.Equal(t, 4, days)

	lead.ContactDate = types.DateOf(2024, time.June, 8)
	days, _ = lead.DaysUntilContact(now)
	assert.Equal(t, -2, days)

	_, ok = (&model.Lead{}).DaysUntilContact(now)
	assert.False(t, ok)
}

func TestDefaultsAndStatus(t *testing.T) {
	lead := &model.Lead{}
	lead.ApplyDefaults()
	assert.True(t, lead.IsOpen())

	task := &model.Task{Status: types.StatusClosed}
	task.ApplyDefaults()
	assert.Equal(t, types.StatusClosed, task.Status)
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

	task := &model.Task{Status: types.StatusOpen, Deadline: types.DateOf(2024, time.June, 9)}
	assert.True(t, task.IsOverdue(now))

	task.Deadline = types.DateOf(2024, time.June, 10)
	assert.False(t, task.IsOverdue(now), "due today is not overdue")

	task.Deadline = types.DateOf(2024, time.June, 1)
	task.Status = types.StatusClosed
	assert.False(t, task.IsOverdue(now))

	assert.False(t, (&model.Task{Status: types.StatusOpen}).IsOverdue(now))
}

func TestSourceTypes(t *testing.T) {
	assert.Equal(t, []model.SourceType{model.SourceClient, model.SourceLead, model.SourceTask}, model.SourceTypes())

	st, err := model.ParseSourceType(" Lead ")
	require.NoError(t, err)
	assert.Equal(t, model.SourceLead, st)

	_, err = model.ParseSourceType("invoice")
	assert.Error(t, err)
	assert.Equal(t, "task:7", model.TaskSource(7).String())
}

func TestPredicates(t *testing.T) {
	format := func(p types.Predicate) string {
		f := p.Filter()
		return schema.NewFormatter(sqlitedialect.New()).FormatQuery(f.Schema, f.Args...)
	}
	assert.Equal(t, `"user_assigned_id" = 3`, format(model.AssignedTo(3)))
	assert.Equal(t, `"user_created_id" = 3`, format(model.CreatedBy(3)))
	assert.Equal(t, `"user_id" = 3`, format(model.OwnedBy(3)))
	assert.Equal(t, `"client_id" = 9`, format(model.ForClient(9)))
	assert.Equal(t, `"status" = 2`, format(model.WithStatus(types.StatusClosed)))
	assert.Equal(t, `("source_type" = 'lead') AND ("source_id" = 5)`, format(model.AttachedTo(model.LeadSource(5))))
}

func TestSourceRefExists(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)

	user := &model.User{Name: "Ann", Email: "ann@example.com"}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)
	client := &model.Client{Name: "Acme", UserID: user.ID}
	_, err = db.NewInsert().Model(client).Exec(ctx)
	require.NoError(t, err)

	ok, err := model.ClientSource(client.ID).Exists(ctx, db)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = model.LeadSource(client.ID).Exists(ctx, db)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = model.SourceRef{Type: "invoice", ID: 1}.Exists(ctx, db)
	assert.True(t, types.IsValidation(err))
}

func TestTimestampsHook(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)

	user := &model.User{Name: "Ann", Email: "ann@example.com"}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)
	require.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.Zero(t, user.CreatedAt.Nanosecond()%int(time.Microsecond))

	created := user.CreatedAt
	time.Sleep(5 * time.Millisecond)
	user.Name = "Annie"
	_, err = db.NewUpdate().Model(user).WherePK().Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, user.CreatedAt)
	assert.True(t, user.UpdatedAt.After(created))
}

func TestRegisterOrdersReferencedTablesFirst(t *testing.T) {
	registry := database.NewModelRegistry()
	model.Register(registry)
	tables := sqlitedialect.New().Tables()

	position := map[string]int{}
	for i, m := range registry.Models() {
		position[tables.Get(reflect.TypeOf(m.Instance()).Elem()).Name] = i
		for _, fk := range m.ForeignKeys() {
			ref, ok := position[fk.ReferenceTable]
			require.True(t, ok, "%s references %s before it is created", fk.Table, fk.ReferenceTable)
			assert.Less(t, ref, i)
		}
	}
	assert.Len(t, position, 9)
}
