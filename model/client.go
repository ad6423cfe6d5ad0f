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

// Client is a customer company owned by one user.
type Client struct {
	bun.BaseModel `bun:"table:clients,alias:client"`

	ID              int64  `bun:"id,pk,autoincrement" json:"id"`
	Name            string `bun:"name,notnull" json:"name" validate:"required,max=255"`
	CompanyName     string `bun:"company_name" json:"company_name" validate:"max=255"`
	PrimaryEmail    string `bun:"primary_email" json:"primary_email" validate:"omitempty,email"`
	PrimaryNumber   string `bun:"primary_number" json:"primary_number" validate:"max=32"`
	SecondaryNumber string `bun:"secondary_number" json:"secondary_number" validate:"max=32"`
	Address         string `bun:"address" json:"address"`
	Zipcode         string `bun:"zipcode" json:"zipcode" validate:"max=16"`
	City            string `bun:"city" json:"city"`
	Vat             string `bun:"vat" json:"vat" validate:"max=32"`
	UserID          int64  `bun:"user_id,notnull" json:"user_id" validate:"required"`
	Timestamps
}
