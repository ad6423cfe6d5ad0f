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

package repository

import (
	"context"

	"github.com/tomoncle/crm/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// CrudRepository defines the record operations keyed by integer id.
type CrudRepository[T any] interface {
	// FindAll returns every record, unpaginated.
	FindAll(ctx context.Context) ([]*T, error)

	// Find returns the record with id or a *types.NotFoundError.
	Find(ctx context.Context, id int64) (*T, error)

	// Create validates and inserts entity and returns its new id.
	Create(ctx context.Context, entity *T) (int64, error)

	// Update applies a partial update keyed by column name, all or nothing.
	Update(ctx context.Context, id int64, fields types.Fields) error

	// Destroy deletes the record with id.
	Destroy(ctx context.Context, id int64) error

	// Upsert inserts entities, updating fields on a duplicate key.
	Upsert(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error
}

// QueryRepository defines predicate based reads.
type QueryRepository[T any] interface {
	FilteredBy(ctx context.Context, predicate types.Predicate) ([]*T, error)
	Count(ctx context.Context, predicate types.Predicate) (int, error)
	// CountByStatus partitions the matching records by their status column.
	CountByStatus(ctx context.Context, predicate types.Predicate) (*types.StatusCount, error)
}

// PageQueryRepository defines pagination functionality for listing entities.
type PageQueryRepository[T any] interface {
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)
}

// TransactionRepository binds a repository to a transaction.
type TransactionRepository[T any] interface {
	// WithTx returns a repository whose operations run inside tx. The caller
	// commits or rolls back.
	WithTx(tx bun.Tx) Repository[T]

	// RunInTx runs fn in a new transaction, or in the bound one.
	RunInTx(ctx context.Context, fn func(ctx context.Context, repo Repository[T]) error) error
}

// Repository combines CRUD, queries, pagination, and transactional operations
// and exposes Bun query builders for advanced use cases.
type Repository[T any] interface {
	CrudRepository[T]
	QueryRepository[T]
	PageQueryRepository[T]
	TransactionRepository[T]
	Dialect() schema.Dialect
	Table() *schema.Table
	DB() bun.IDB
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}

// Validator checks an entity before it is written. Failures should be
// *types.ValidationError.
type Validator interface {
	Validate(entity interface{}) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(entity interface{}) error

func (f ValidatorFunc) Validate(entity interface{}) error { return f(entity) }

// DestroyHook runs inside the destroy transaction before the row is deleted.
type DestroyHook func(ctx context.Context, db bun.IDB, id int64) error

// Defaulter is implemented by entities that fill unset fields before insert.
type Defaulter interface {
	ApplyDefaults()
}

// Option configures a repository.
type Option func(*options)

type options struct {
	validator    Validator
	destroyHooks []DestroyHook
	immutable    []string
}

// WithValidator sets the validation collaborator run on create and update.
func WithValidator(v Validator) Option {
	return func(o *options) { o.validator = v }
}

// WithDestroyHook appends a hook run before each delete.
func WithDestroyHook(h DestroyHook) Option {
	return func(o *options) { o.destroyHooks = append(o.destroyHooks, h) }
}

// WithImmutableColumns forbids updating the given columns. The primary key
// and created_at are always immutable.
func WithImmutableColumns(columns ...string) Option {
	return func(o *options) { o.immutable = append(o.immutable, columns...) }
}
