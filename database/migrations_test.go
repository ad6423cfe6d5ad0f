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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/crm/database"
	"github.com/tomoncle/crm/internal/testdb"
	"github.com/tomoncle/crm/model"
	"github.com/uptrace/bun"
)

type gadget struct {
	bun.BaseModel `bun:"table:gadgets"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Name          string `bun:"name,notnull"`
	UserID        int64  `bun:"user_id,notnull"`
}

func TestMigrationsCreateTables(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)

	mm := database.NewMigrationManager(db, nil, nil)
	applied, err := mm.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "001", applied[0].Version)
	assert.Equal(t, "create_base_tables", applied[0].Name)

	for _, m := range []interface{}{(*model.User)(nil), (*model.Lead)(nil), (*model.Task)(nil), (*model.Comment)(nil)} {
		count, err := db.NewSelect().Model(m).Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	}

	require.NoError(t, mm.RunMigrations(ctx), "migrations are idempotent")
	applied, err = mm.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Len(t, applied, 1)
}

func TestMigrationsDeclareForeignKeys(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)

	roleID := int64(404)
	_, err := db.NewInsert().Model(&model.User{Name: "Ann", Email: "ann@example.com", RoleID: &roleID}).Exec(ctx)
	require.Error(t, err)
	is, kind := database.IsSqlError(err)
	assert.True(t, is)
	assert.Equal(t, database.ForeignKeyViolationErr, kind)
}

func TestMigrationsSeedOnMigrate(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	path := filepath.Join(root, "environments", "test", "001_roles.sql")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(
		"INSERT INTO roles (name, display_name) VALUES ('administrator', 'Administrator');\n"+
			"INSERT INTO settings (id, company, country) VALUES (1, '{{.ENVIRONMENT}} company', 'DK');\n"), 0o644))

	cfg := testdb.Config(t)
	cfg.DataInitConfig.AutoInitOnMigration = true
	cfg.DataInitConfig.Filepath = root
	cfg.DataInitConfig.Environment = "test"
	db := testdb.OpenWithConfig(t, cfg)

	var roles []model.Role
	require.NoError(t, db.NewSelect().Model(&roles).Scan(ctx))
	require.Len(t, roles, 1)
	assert.Equal(t, "administrator", roles[0].Name)

	setting := new(model.Setting)
	require.NoError(t, db.NewSelect().Model(setting).Where("id = 1").Scan(ctx))
	assert.Equal(t, "test company", setting.Company)

	applied, err := database.NewMigrationManager(db, nil, cfg).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Equal(t, "003", applied[1].Version)
}

func TestMigrationsCustomRegistryAndRollback(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)

	registry := database.NewModelRegistry()
	registry.Register(database.NewModelAdapter((*gadget)(nil), 60,
		database.References("gadgets", "user_id", model.TableUsers)))

	cfg := testdb.Config(t)
	mm := database.NewMigrationManager(db, nil, cfg)
	mm.SetRegistry(registry)

	// 001 was recorded for the default registry; rolling it back with the
	// custom registry only drops gadgets.
	require.NoError(t, mm.RollbackMigration(ctx, "001"))
	require.NoError(t, mm.RunMigrations(ctx))

	_, err := db.NewInsert().Model(&gadget{Name: "pen", UserID: 1}).Exec(ctx)
	assert.Error(t, err, "user 1 does not exist")

	require.NoError(t, mm.RollbackMigration(ctx, "001"))
	_, err = db.NewSelect().Model((*gadget)(nil)).Count(ctx)
	assert.Error(t, err)

	assert.Error(t, mm.RollbackMigration(ctx, "001"), "not applied")
	assert.Error(t, mm.RollbackMigration(ctx, "042"))
}

func TestInitDataRunsSeedFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	path := filepath.Join(root, "common", "001_departments.sql")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("INSERT INTO departments (name) VALUES ('Sales');\n"), 0o644))

	cfg := testdb.Config(t)
	cfg.DataInitConfig.Filepath = root
	db := testdb.OpenWithConfig(t, cfg)

	require.NoError(t, database.NewMigrationManager(db, nil, cfg).InitData(ctx))
	count, err := db.NewSelect().Model((*model.Department)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
