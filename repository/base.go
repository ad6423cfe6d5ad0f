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
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/tomoncle/crm/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
	"github.com/uptrace/bun/schema"
)

const (
	statusColumn    = "status"
	createdAtColumn = "created_at"
	updatedAtColumn = "updated_at"
)

type baseRepositoryImpl[T any] struct {
	db        bun.IDB
	table     *schema.Table
	entity    string
	opts      *options
	immutable map[string]struct{}
}

// NewRepository returns a generic repository for T backed by db, which is
// usually a *bun.DB. T must be a bun model struct with a single integer
// primary key.
func NewRepository[T any](db bun.IDB, opts ...Option) Repository[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	table := db.Dialect().Tables().Get(typ)

	immutable := map[string]struct{}{createdAtColumn: {}}
	for _, pk := range table.PKs {
		immutable[pk.Name] = struct{}{}
	}
	for _, col := range o.immutable {
		immutable[col] = struct{}{}
	}
	return &baseRepositoryImpl[T]{
		db:        db,
		table:     table,
		entity:    typ.Name(),
		opts:      o,
		immutable: immutable,
	}
}

func (r *baseRepositoryImpl[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T]) Table() *schema.Table { return r.table }

func (r *baseRepositoryImpl[T]) DB() bun.IDB { return r.db }

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery {
	return r.db.NewSelect().Model((*T)(nil))
}

func (r *baseRepositoryImpl[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *baseRepositoryImpl[T]) NewUpdate() *bun.UpdateQuery {
	return r.db.NewUpdate().Model((*T)(nil))
}

func (r *baseRepositoryImpl[T]) NewDelete() *bun.DeleteQuery {
	return r.db.NewDelete().Model((*T)(nil))
}

func (r *baseRepositoryImpl[T]) WithTx(tx bun.Tx) Repository[T] {
	clone := *r
	clone.db = tx
	return &clone
}

func (r *baseRepositoryImpl[T]) RunInTx(ctx context.Context, fn func(ctx context.Context, repo Repository[T]) error) error {
	return r.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		clone := *r
		clone.db = db
		return fn(ctx, &clone)
	})
}

// runInTx opens a transaction on a *bun.DB; a repository already bound to a
// transaction runs fn in it directly.
func (r *baseRepositoryImpl[T]) runInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if db, ok := r.db.(*bun.DB); ok {
		return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			return fn(ctx, tx)
		})
	}
	return fn(ctx, r.db)
}

func (r *baseRepositoryImpl[T]) pk() bun.Ident {
	if len(r.table.PKs) > 0 {
		return bun.Ident(r.table.PKs[0].Name)
	}
	return bun.Ident("id")
}

func (r *baseRepositoryImpl[T]) FindAll(ctx context.Context) ([]*T, error) {
	entities := make([]*T, 0)
	err := r.db.NewSelect().Model(&entities).Order(string(r.pk()) + " ASC").Scan(ctx)
	if err != nil {
		return nil, r.readError(err)
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Find(ctx context.Context, id int64) (*T, error) {
	return r.find(ctx, r.db, id)
}

func (r *baseRepositoryImpl[T]) find(ctx context.Context, db bun.IDB, id int64) (*T, error) {
	entity := new(T)
	err := db.NewSelect().Model(entity).Where("? = ?", r.pk(), id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.NewNotFoundError(r.entity, id)
		}
		return nil, r.readError(err)
	}
	return entity, nil
}

func (r *baseRepositoryImpl[T]) ensureExists(ctx context.Context, db bun.IDB, id int64) error {
	exists, err := db.NewSelect().Model((*T)(nil)).Where("? = ?", r.pk(), id).Exists(ctx)
	if err != nil {
		return r.readError(err)
	}
	if !exists {
		return types.NewNotFoundError(r.entity, id)
	}
	return nil
}

func (r *baseRepositoryImpl[T]) FilteredBy(ctx context.Context, predicate types.Predicate) ([]*T, error) {
	entities := make([]*T, 0)
	query := applyPredicate(r.db.NewSelect().Model(&entities), predicate)
	if err := query.Order(string(r.pk()) + " ASC").Scan(ctx); err != nil {
		return nil, r.readError(err)
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Count(ctx context.Context, predicate types.Predicate) (int, error) {
	count, err := applyPredicate(r.db.NewSelect().Model((*T)(nil)), predicate).Count(ctx)
	if err != nil {
		return 0, r.readError(err)
	}
	return count, nil
}

type statusRow struct {
	Status types.Status `bun:"status"`
	Count  int          `bun:"count"`
}

// CountByStatus runs one grouped COUNT(*) so both numbers come from the same
// snapshot.
func (r *baseRepositoryImpl[T]) CountByStatus(ctx context.Context, predicate types.Predicate) (*types.StatusCount, error) {
	if !r.table.HasField(statusColumn) {
		return nil, types.NewValidationError(statusColumn, fmt.Sprintf("%s has no status column", r.entity))
	}
	var rows []statusRow
	err := applyPredicate(r.db.NewSelect().Model((*T)(nil)), predicate).
		Column(statusColumn).
		ColumnExpr("COUNT(*) AS count").
		Group(statusColumn).
		Scan(ctx, &rows)
	if err != nil {
		return nil, r.readError(err)
	}
	result := &types.StatusCount{}
	for _, row := range rows {
		switch row.Status {
		case types.StatusOpen:
			result.Open += row.Count
		case types.StatusClosed:
			result.Closed += row.Count
		}
	}
	return result, nil
}

func (r *baseRepositoryImpl[T]) Page(ctx context.Context, pageRequest *types.PageRequest) (*types.Pagination[T], error) {
	if pageRequest == nil {
		pageRequest = types.NewDefaultPageRequest(1, 10)
	}
	entities := make([]*T, 0)
	query := applyPredicate(r.db.NewSelect().Model(&entities), pageRequest.GetPredicate())
	pagination := types.NewDefaultPagination[T](pageRequest.GetPage(), pageRequest.GetPageSize())
	total, err := query.Count(ctx)
	if err != nil {
		return nil, r.readError(err)
	}
	if total == 0 {
		return pagination, nil
	}
	err = query.
		Offset(pageRequest.GetOffset()).
		Limit(pageRequest.GetPageSize()).
		Order(pageRequest.GetOrders()...).
		Scan(ctx)
	if err != nil {
		return nil, r.readError(err)
	}
	pagination.Total = total
	pagination.Items = entities
	return pagination, nil
}

func (r *baseRepositoryImpl[T]) Create(ctx context.Context, entity *T) (int64, error) {
	if entity == nil {
		return 0, types.NewValidationError(r.entity, "entity is required")
	}
	if d, ok := any(entity).(Defaulter); ok {
		d.ApplyDefaults()
	}
	if err := r.validate(entity); err != nil {
		return 0, err
	}
	res, err := r.db.NewInsert().Model(entity).Exec(ctx)
	if err != nil {
		return 0, r.writeError(err)
	}
	if id := r.idOf(entity); id != 0 {
		return id, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s id: %w", r.entity, err)
	}
	return id, nil
}

// idOf reads the integer primary key of entity, or 0.
func (r *baseRepositoryImpl[T]) idOf(entity *T) int64 {
	if len(r.table.PKs) == 0 {
		return 0
	}
	v := r.table.PKs[0].Value(reflect.ValueOf(entity).Elem())
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	}
	return 0
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, id int64, fields types.Fields) error {
	if len(fields) == 0 {
		return types.NewValidationError("fields", "nothing to update")
	}
	var invalid *types.ValidationError
	for col := range fields {
		switch {
		case !r.table.HasField(col):
			invalid = addField(invalid, col, "unknown field")
		case r.isImmutable(col):
			invalid = addField(invalid, col, "field cannot be updated")
		}
	}
	if invalid != nil {
		return invalid
	}
	fields, invalid = r.coerceFields(fields)
	if invalid != nil {
		return invalid
	}

	return r.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		if err := r.ensureExists(ctx, db, id); err != nil {
			return err
		}
		query := db.NewUpdate().Model((*T)(nil))
		for _, col := range fields.Columns() {
			query = query.Set("? = ?", bun.Ident(col), fields[col])
		}
		if _, ok := fields[updatedAtColumn]; !ok && r.table.HasField(updatedAtColumn) {
			query = query.Set("? = ?", bun.Ident(updatedAtColumn), time.Now().Truncate(time.Microsecond))
		}
		if _, err := query.Where("? = ?", r.pk(), id).Exec(ctx); err != nil {
			return r.writeError(err)
		}
		updated, err := r.find(ctx, db, id)
		if err != nil {
			return err
		}
		return r.validate(updated)
	})
}

func addField(ve *types.ValidationError, field, msg string) *types.ValidationError {
	if ve == nil {
		return types.NewValidationError(field, msg)
	}
	return ve.Add(field, msg)
}

func (r *baseRepositoryImpl[T]) isImmutable(col string) bool {
	_, ok := r.immutable[col]
	return ok
}

func (r *baseRepositoryImpl[T]) Destroy(ctx context.Context, id int64) error {
	return r.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		if err := r.ensureExists(ctx, db, id); err != nil {
			return err
		}
		for _, hook := range r.opts.destroyHooks {
			if err := hook(ctx, db, id); err != nil {
				return err
			}
		}
		if _, err := db.NewDelete().Model((*T)(nil)).Where("? = ?", r.pk(), id).Exec(ctx); err != nil {
			return r.writeError(err)
		}
		return nil
	})
}

func (r *baseRepositoryImpl[T]) validate(entity *T) error {
	if r.opts.validator == nil {
		return nil
	}
	return r.opts.validator.Validate(entity)
}

func (r *baseRepositoryImpl[T]) Upsert(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error {
	if len(fields) == 0 {
		return types.NewValidationError("fields", "fields cannot be empty")
	}
	if len(entity) == 0 {
		return nil
	}
	entities := make([]*T, 0, len(entity))
	for _, e := range entity {
		if d, ok := any(e).(Defaulter); ok {
			d.ApplyDefaults()
		}
		if err := r.validate(e); err != nil {
			return err
		}
		entities = append(entities, e)
	}

	features := r.db.Dialect().Features()
	var err error
	switch {
	case features.Has(feature.InsertOnConflict):
		err = r.upsertOnConflict(ctx, fields, duplicateKeys, entities)
	case features.Has(feature.InsertOnDuplicateKey):
		err = r.upsertOnDuplicateKey(ctx, fields, entities)
	default:
		err = r.upsertFallback(ctx, entities)
	}
	if err != nil {
		return r.writeError(err)
	}
	return nil
}

func (r *baseRepositoryImpl[T]) upsertOnDuplicateKey(ctx context.Context, fields []string, entities []*T) error {
	assignments := make([]string, len(fields))
	args := make([]interface{}, 0, len(fields)*2)
	for i, field := range fields {
		assignments[i] = "? = VALUES(?)"
		args = append(args, bun.Ident(field), bun.Ident(field))
	}
	_, err := r.db.NewInsert().
		Model(&entities).
		On("DUPLICATE KEY UPDATE "+strings.Join(assignments, ", "), args...).
		Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) upsertOnConflict(ctx context.Context, fields []string, duplicateKeys []string, entities []*T) error {
	if len(duplicateKeys) == 0 {
		duplicateKeys = []string{string(r.pk())}
	}
	keys := make([]interface{}, len(duplicateKeys))
	for i, k := range duplicateKeys {
		keys[i] = bun.Ident(k)
	}
	query := r.db.NewInsert().
		Model(&entities).
		On("CONFLICT (?) DO UPDATE", bun.In(keys))
	for _, field := range fields {
		query = query.Set("? = EXCLUDED.?", bun.Ident(field), bun.Ident(field))
	}
	_, err := query.Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) upsertFallback(ctx context.Context, entities []*T) error {
	return r.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		for _, entity := range entities {
			id := r.idOf(entity)
			exists := false
			if id != 0 {
				var err error
				exists, err = db.NewSelect().Model((*T)(nil)).Where("? = ?", r.pk(), id).Exists(ctx)
				if err != nil {
					return err
				}
			}
			if exists {
				if _, err := db.NewUpdate().Model(entity).WherePK().Exec(ctx); err != nil {
					return err
				}
				continue
			}
			if _, err := db.NewInsert().Model(entity).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

func applyPredicate(query *bun.SelectQuery, predicate types.Predicate) *bun.SelectQuery {
	if predicate == nil {
		return query
	}
	if f := predicate.Filter(); !f.IsEmpty() {
		return query.Where("("+f.Schema+")", f.Args...)
	}
	return query
}
