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

package crm

import (
	"context"
	"fmt"

	"github.com/tomoncle/crm/model"
	"github.com/tomoncle/crm/repository"
	"github.com/tomoncle/crm/types"
	"github.com/uptrace/bun"
)

// Attachments records comments and activity entries against leads, tasks and
// clients. Both are append-only.
type Attachments struct {
	comments   Service[model.Comment]
	activities Service[model.Activity]
}

// attachedColumns cannot be changed once an attachment is written, so an
// attachment always points at the record it was checked against.
var attachedColumns = repository.WithImmutableColumns("source_type", "source_id", "user_id")

// NewAttachments returns an Attachments bound to db, or to the global
// connection when db is nil.
func NewAttachments(db bun.IDB) *Attachments {
	return &Attachments{
		comments:   NewServiceWithDB[model.Comment](db, attachedColumns),
		activities: NewServiceWithDB[model.Activity](db, attachedColumns),
	}
}

// AddComment attaches a comment written by authorID to source.
func (a *Attachments) AddComment(ctx context.Context, source model.SourceRef, authorID int64, text string) (*model.Comment, error) {
	repo, err := a.comments.Repository()
	if err != nil {
		return nil, err
	}
	comment := &model.Comment{Description: text, UserID: authorID, Source: source}
	err = repo.RunInTx(ctx, func(ctx context.Context, repo repository.Repository[model.Comment]) error {
		if err := ensureSource(ctx, repo.DB(), "Comment", source); err != nil {
			return err
		}
		id, err := repo.Create(ctx, comment)
		if err != nil {
			return err
		}
		comment.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// AddActivity records an activity entry by actorID against source.
func (a *Attachments) AddActivity(ctx context.Context, source model.SourceRef, actorID int64, text string, props types.JsonObject) (*model.Activity, error) {
	repo, err := a.activities.Repository()
	if err != nil {
		return nil, err
	}
	activity := &model.Activity{Text: text, UserID: actorID, Source: source, Properties: props}
	err = repo.RunInTx(ctx, func(ctx context.Context, repo repository.Repository[model.Activity]) error {
		if err := ensureSource(ctx, repo.DB(), "Activity", source); err != nil {
			return err
		}
		id, err := repo.Create(ctx, activity)
		if err != nil {
			return err
		}
		activity.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activity, nil
}

// Comments returns the comments of source, oldest first.
func (a *Attachments) Comments(ctx context.Context, source model.SourceRef) ([]*model.Comment, error) {
	if !source.Type.IsValid() {
		return nil, unknownSource(source)
	}
	return a.comments.FilteredBy(ctx, model.AttachedTo(source))
}

// Activity returns the activity entries of source, oldest first.
func (a *Attachments) Activity(ctx context.Context, source model.SourceRef) ([]*model.Activity, error) {
	if !source.Type.IsValid() {
		return nil, unknownSource(source)
	}
	return a.activities.FilteredBy(ctx, model.AttachedTo(source))
}

func unknownSource(source model.SourceRef) error {
	return types.NewValidationError("source_type", fmt.Sprintf("unknown source type %q", source.Type))
}

// ensureSource fails with a reference conflict when source does not exist.
func ensureSource(ctx context.Context, db bun.IDB, entity string, source model.SourceRef) error {
	exists, err := source.Exists(ctx, db)
	if err != nil {
		return err
	}
	if !exists {
		return &types.ConflictError{
			Entity: entity,
			Reason: types.ConflictReference,
			Err:    fmt.Errorf("%s does not exist", source),
		}
	}
	return nil
}

// detachAll deletes the comments and activity of a source record. It runs as
// a destroy hook inside the delete transaction.
func detachAll(sourceType model.SourceType) repository.DestroyHook {
	return func(ctx context.Context, db bun.IDB, id int64) error {
		filter := model.AttachedTo(model.SourceRef{Type: sourceType, ID: id}).Filter()
		for _, m := range []interface{}{(*model.Comment)(nil), (*model.Activity)(nil)} {
			_, err := db.NewDelete().Model(m).Where("("+filter.Schema+")", filter.Args...).Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to detach %s %d: %w", sourceType, id, err)
			}
		}
		return nil
	}
}
