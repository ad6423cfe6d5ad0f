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
	"fmt"

	"github.com/tomoncle/crm/database"
	"github.com/tomoncle/crm/types"
)

// writeError maps constraint violations raised by the store to typed errors.
func (r *baseRepositoryImpl[T]) writeError(err error) error {
	if err == nil || types.IsConflict(err) || types.IsValidation(err) || types.IsNotFound(err) {
		return err
	}
	_, kind := database.IsSqlError(err)
	switch kind {
	case database.DuplicateKeyErr:
		return &types.ConflictError{Entity: r.entity, Reason: types.ConflictUnique, Err: err}
	case database.ForeignKeyViolationErr:
		return &types.ConflictError{Entity: r.entity, Reason: types.ConflictReference, Err: err}
	case database.NotNullViolationErr, database.CheckConstraintViolationErr,
		database.DataTruncatedErr, database.InvalidTypeCastErr, database.NoColumnErr:
		return types.NewValidationError(r.entity, kind.String()+": "+err.Error())
	}
	return fmt.Errorf("%s: %w", r.entity, err)
}

// readError turns unknown columns in a predicate into validation errors.
func (r *baseRepositoryImpl[T]) readError(err error) error {
	if err == nil {
		return nil
	}
	if _, kind := database.IsSqlError(err); kind == database.NoColumnErr {
		return types.NewValidationError("predicate", err.Error())
	}
	return fmt.Errorf("%s: %w", r.entity, err)
}
