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
	"github.com/uptrace/bun"
)

// Role groups users by permission level.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:role"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Name        string `bun:"name,notnull,unique" json:"name" validate:"required,max=64"`
	DisplayName string `bun:"display_name" json:"display_name" validate:"max=255"`
	Description string `bun:"description" json:"description"`
}

// Department groups users organisationally.
type Department struct {
	bun.BaseModel `bun:"table:departments,alias:dept"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Name        string `bun:"name,notnull,unique" json:"name" validate:"required,max=255"`
	Description string `bun:"description" json:"description"`
}

// Setting holds the company-wide settings row.
type Setting struct {
	bun.BaseModel `bun:"table:settings,alias:setting"`

	ID      int64  `bun:"id,pk,autoincrement" json:"id"`
	Company string `bun:"company,notnull" json:"company" validate:"required,max=255"`
	Country string `bun:"country" json:"country" validate:"max=64"`
}

// User is an account that owns clients and is assigned leads and tasks.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           int64  `bun:"id,pk,autoincrement" json:"id"`
	Name         string `bun:"name,notnull" json:"name" validate:"required,max=255"`
	Email        string `bun:"email,notnull,unique" json:"email" validate:"required,email,max=255"`
	RoleID       *int64 `bun:"role_id" json:"role_id,omitempty" validate:"omitempty,gt=0"`
	DepartmentID *int64 `bun:"department_id" json:"department_id,omitempty" validate:"omitempty,gt=0"`
	Timestamps
}
