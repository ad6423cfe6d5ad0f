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
	"errors"
	"sync"

	"github.com/tomoncle/crm/database"
	"github.com/tomoncle/crm/repository"
	"github.com/tomoncle/crm/types"
	"github.com/tomoncle/crm/validation"
	"github.com/uptrace/bun"
)

// ErrDatabaseNotInitialized is returned by services created without a
// database before database.InitDB or database.SetDB ran.
var ErrDatabaseNotInitialized = errors.New("database not initialized")

type Service[T any] interface {
	// Find returns a single entity by its identifier.
	Find(ctx context.Context, id int64) (*T, error)

	// FindAll returns all entities.
	FindAll(ctx context.Context) ([]*T, error)

	// FilteredBy returns entities that match predicate.
	FilteredBy(ctx context.Context, predicate types.Predicate) ([]*T, error)

	// Count returns the number of entities that match predicate.
	Count(ctx context.Context, predicate types.Predicate) (int, error)

	// Page returns a paginated list of entities.
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)

	// Create inserts a new entity and returns its id.
	Create(ctx context.Context, model *T) (int64, error)

	// Update applies a partial update to an existing entity.
	Update(ctx context.Context, id int64, fields types.Fields) error

	// Destroy removes an entity by its identifier.
	Destroy(ctx context.Context, id int64) error

	// Repository returns the underlying repository.
	Repository() (repository.Repository[T], error)
}

type baseServiceImpl[T any] struct {
	db   bun.IDB
	opts []repository.Option
	repo repository.Repository[T]
	mu   sync.Mutex
}

// NewService returns a default Service implementation using the generic
// repository backed by the global database connection, resolved on first use.
func NewService[T any](opts ...repository.Option) Service[T] {
	return newBaseServiceImpl[T](nil, opts...)
}

// NewServiceWithDB returns a Service bound to db. A nil db falls back to the
// global connection.
func NewServiceWithDB[T any](db bun.IDB, opts ...repository.Option) Service[T] {
	return newBaseServiceImpl[T](db, opts...)
}

func newBaseServiceImpl[T any](db bun.IDB, opts ...repository.Option) *baseServiceImpl[T] {
	all := append([]repository.Option{repository.WithValidator(validation.Default())}, opts...)
	return &baseServiceImpl[T]{db: db, opts: all}
}

func (s *baseServiceImpl[T]) baseRepo() (repository.Repository[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo != nil {
		return s.repo, nil
	}
	db := s.db
	if db == nil {
		if global := database.GetDB(); global != nil {
			db = global
		}
	}
	if db == nil {
		return nil, ErrDatabaseNotInitialized
	}
	s.repo = repository.NewRepository[T](db, s.opts...)
	return s.repo, nil
}

func (s *baseServiceImpl[T]) Repository() (repository.Repository[T], error) {
	return s.baseRepo()
}

func (s *baseServiceImpl[T]) Find(ctx context.Context, id int64) (*T, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.Find(ctx, id)
}

func (s *baseServiceImpl[T]) FindAll(ctx context.Context) ([]*T, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.FindAll(ctx)
}

func (s *baseServiceImpl[T]) FilteredBy(ctx context.Context, predicate types.Predicate) ([]*T, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.FilteredBy(ctx, predicate)
}

func (s *baseServiceImpl[T]) Count(ctx context.Context, predicate types.Predicate) (int, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return 0, err
	}
	return repo.Count(ctx, predicate)
}

func (s *baseServiceImpl[T]) Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.Page(ctx, page)
}

func (s *baseServiceImpl[T]) Create(ctx context.Context, model *T) (int64, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return 0, err
	}
	return repo.Create(ctx, model)
}

func (s *baseServiceImpl[T]) Update(ctx context.Context, id int64, fields types.Fields) error {
	repo, err := s.baseRepo()
	if err != nil {
		return err
	}
	return repo.Update(ctx, id, fields)
}

func (s *baseServiceImpl[T]) Destroy(ctx context.Context, id int64) error {
	repo, err := s.baseRepo()
	if err != nil {
		return err
	}
	return repo.Destroy(ctx, id)
}

// countByStatus partitions the records of svc matching predicate by status.
func countByStatus[T any](ctx context.Context, svc Service[T], predicate types.Predicate) (*types.StatusCount, error) {
	repo, err := svc.Repository()
	if err != nil {
		return nil, err
	}
	return repo.CountByStatus(ctx, predicate)
}
