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

// Lead is a sales opportunity assigned to a user.
type Lead struct {
	bun.BaseModel `bun:"table:leads,alias:lead"`

	ID             int64        `bun:"id,pk,autoincrement" json:"id"`
	Title          string       `bun:"title,notnull" json:"title" validate:"required,max=255"`
	Description    string       `bun:"description" json:"description"`
	Status         types.Status `bun:"status,notnull" json:"status" validate:"status"`
	UserAssignedID int64        `bun:"user_assigned_id,notnull" json:"user_assigned_id" validate:"required"`
	UserCreatedID  int64        `bun:"user_created_id,notnull" json:"user_created_id" validate:"required"`
	ClientID       *int64       `bun:"client_id" json:"client_id,omitempty" validate:"omitempty,gt=0"`
	ContactDate    types.Date   `bun:"contact_date,type:date" json:"contact_date"`
	Timestamps
}

// ApplyDefaults opens a lead whose status is unset.
func (l *Lead) ApplyDefaults() {
	if l.Status == 0 {
		l.Status = types.StatusOpen
	}
}

// DaysUntilContact returns the signed number of days from the start of now's
// day to the contact date. The second result is false without a contact date.
func (l *Lead) DaysUntilContact(now time.Time) (int, bool) {
	return l.ContactDate.DaysSince(now)
}

// IsOpen reports whether the lead is still open.
func (l *Lead) IsOpen() bool { return l.Status.IsOpen() }
