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

package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/crm/database"
	"github.com/tomoncle/crm/internal/testdb"
	"github.com/tomoncle/crm/model"
)

func TestGlobalDatabase(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, database.GetDB())
	assert.False(t, database.GetHealthStatus(ctx).Healthy)
	assert.Error(t, database.RunMigrations(ctx))
	assert.Error(t, database.InitData(ctx))

	_, err := database.InitDB(ctx, nil)
	assert.Error(t, err)

	cfg := testdb.Config(t)
	db, err := database.InitDB(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB() })

	assert.Same(t, db, database.GetDB())
	assert.Same(t, cfg, database.GetConfig())
	assert.NotNil(t, database.GetDatabaseManager())
	assert.True(t, database.GetHealthStatus(ctx).Healthy)
	assert.Equal(t, 1, database.GetDatabaseStats().MaxOpenConns)

	count, err := db.NewSelect().Model((*model.Client)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	require.NoError(t, database.RunMigrations(ctx))
	require.NoError(t, database.InitData(ctx), "an empty seed directory is not an error")

	require.NoError(t, database.CloseDB())
	assert.Nil(t, database.GetDB())
}
