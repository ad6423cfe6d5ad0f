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
	"time"

	"github.com/tomoncle/crm/types"
	"github.com/uptrace/bun"
)

// Task is a unit of work assigned to a user, optionally for a client.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:task"`

	ID             int64        `bun:"id,pk,autoincrement" json:"id"`
	Title          string       `bun:"title,notnull" json:"title" validate:"required,max=255"`
	Description    string       `bun:"description" json:"description"`
	Status         types.Status `bun:"status,notnull" json:"status" validate:"status"`
	UserAssignedID int64        `bun:"user_assigned_id,notnull" json:"user_assigned_id" validate:"required"`
	UserCreatedID  int64        `bun:"user_created_id,notnull" json:"user_created_id" validate:"required"`
	ClientID       *int64       `bun:"client_id" json:"client_id,omitempty" validate:"omitempty,gt=0"`
	Deadline       types.Date   `bun:"deadline,type:date" json:"deadline"`
	Timestamps
}

func (t *Task) ApplyDefaults() {
	if t.Status == 0 {
		t.Status = types.StatusOpen
	}
}

// IsOverdue reports whether an open task's deadline lies before now's day.
func (t *Task) IsOverdue(now time.Time) bool {
	days, ok := t.Deadline.DaysSince(now)
	return ok && t.Status.IsOpen() && days < 0
}
