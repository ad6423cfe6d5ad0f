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

package model

import (
	"context"
	"time"

	"github.com/tomoncle/crm/database"
	"github.com/uptrace/bun"
)

// Table names.
const (
	TableRoles       = "roles"
	TableDepartments = "departments"
	TableSettings    = "settings"
	TableUsers       = "users"
	TableClients     = "clients"
	TableLeads       = "leads"
	TableTasks       = "tasks"
	TableComments    = "comments"
	TableActivities  = "activities"
)

// Timestamps is embedded by entities that track creation and modification.
type Timestamps struct {
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

var _ bun.BeforeAppendModelHook = (*Timestamps)(nil)

// BeforeAppendModel stamps both times on insert and UpdatedAt on update.
// Times are kept at the microsecond precision the stores retain.
func (t *Timestamps) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().Truncate(time.Microsecond)
	switch query.(type) {
	case *bun.InsertQuery:
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		t.UpdatedAt = now
	case *bun.UpdateQuery:
		t.UpdatedAt = now
	}
	return nil
}

func init() {
	Register(database.DefaultRegistry())
}

// Register adds every CRM table to registry. Priorities order creation so
// referenced tables exist first; foreign keys restrict deletes of rows that
// are still referenced.
func Register(registry database.ModelRegistry) {
	ref := database.References

	registry.Register(database.NewModelAdapter((*Role)(nil), 10))
	registry.Register(database.NewModelAdapter((*Department)(nil), 10))
	registry.Register(database.NewModelAdapter((*Setting)(nil), 10))
	registry.Register(database.NewModelAdapter((*User)(nil), 20,
		ref(TableUsers, "role_id", TableRoles),
		ref(TableUsers, "department_id", TableDepartments),
	))
	registry.Register(database.NewModelAdapter((*Client)(nil), 30,
		ref(TableClients, "user_id", TableUsers),
	))
	registry.Register(database.NewModelAdapter((*Lead)(nil), 40,
		ref(TableLeads, "user_assigned_id", TableUsers),
		ref(TableLeads, "user_created_id", TableUsers),
		ref(TableLeads, "client_id", TableClients),
	))
	registry.Register(database.NewModelAdapter((*Task)(nil), 40,
		ref(TableTasks, "user_assigned_id", TableUsers),
		ref(TableTasks, "user_created_id", TableUsers),
		ref(TableTasks, "client_id", TableClients),
	))
	registry.Register(database.NewModelAdapter((*Comment)(nil), 50,
		ref(TableComments, "user_id", TableUsers),
	))
	registry.Register(database.NewModelAdapter((*Activity)(nil), 50,
		ref(TableActivities, "user_id", TableUsers),
	))
}
