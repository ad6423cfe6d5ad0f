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
	"fmt"
	"sort"
	"strings"

	"github.com/tomoncle/crm/types"
	"github.com/uptrace/bun"
)

// SourceType names the kind of record a comment or activity is attached to.
type SourceType string

const (
	SourceLead   SourceType = "lead"
	SourceTask   SourceType = "task"
	SourceClient SourceType = "client"
)

// sourceModels is the lookup table from a source type to the model that owns
// it. Attachments may only reference types listed here.
var sourceModels = map[SourceType]interface{}{
	SourceLead:   (*Lead)(nil),
	SourceTask:   (*Task)(nil),
	SourceClient: (*Client)(nil),
}

// SourceTypes returns the known source types in sorted order.
func SourceTypes() []SourceType {
	result := make([]SourceType, 0, len(sourceModels))
	for t := range sourceModels {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// ParseSourceType accepts a known source type name in any case.
func ParseSourceType(s string) (SourceType, error) {
	t := SourceType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown source type: %q", s)
	}
	return t, nil
}

func (t SourceType) IsValid() bool {
	_, ok := sourceModels[t]
	return ok
}

func (t SourceType) String() string { return string(t) }

// SourceRef points at the record an attachment belongs to. It is stored as
// the source_type and source_id columns.
type SourceRef struct {
	Type SourceType `bun:"type,notnull" json:"source_type" validate:"required,oneof=lead task client"`
	ID   int64      `bun:"id,notnull" json:"source_id" validate:"required"`
}

func LeadSource(id int64) SourceRef   { return SourceRef{Type: SourceLead, ID: id} }
func TaskSource(id int64) SourceRef   { return SourceRef{Type: SourceTask, ID: id} }
func ClientSource(id int64) SourceRef { return SourceRef{Type: SourceClient, ID: id} }

func (r SourceRef) String() string { return fmt.Sprintf("%s:%d", r.Type, r.ID) }

// Exists reports whether the referenced record is present. Unknown source
// types are a validation error.
func (r SourceRef) Exists(ctx context.Context, db bun.IDB) (bool, error) {
	model, ok := sourceModels[r.Type]
	if !ok {
		return false, types.NewValidationError("source_type", fmt.Sprintf("unknown source type %q", r.Type))
	}
	return db.NewSelect().Model(model).Where("? = ?", bun.Ident("id"), r.ID).Exists(ctx)
}

// Comment is free text a user attached to a lead, task or client.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:comment"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Description string    `bun:"description,notnull" json:"description" validate:"required"`
	UserID      int64     `bun:"user_id,notnull" json:"user_id" validate:"required"`
	Source      SourceRef `bun:"embed:source_" json:"source"`
	Timestamps
}

// Activity is an audit entry recorded against a lead, task or client.
type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:activity"`

	ID         int64            `bun:"id,pk,autoincrement" json:"id"`
	Text       string           `bun:"text,notnull" json:"text" validate:"required"`
	UserID     int64            `bun:"user_id,notnull" json:"user_id" validate:"required"`
	Source     SourceRef        `bun:"embed:source_" json:"source"`
	Properties types.JsonObject `bun:"properties,type:text" json:"properties,omitempty"`
	Timestamps
}
