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

package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
connection:
  type: postgres
  host: db.internal
  port: 5432
  dbname: crm
  slow_query_time: 500ms
  enable_metrics: true
migrate:
  enable_foreign_key: true
  foreign_key_file: configs/foreign_keys.yaml
init:
  environment: dev
`))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.ConnectionConfig.Type)
	assert.Equal(t, "db.internal", cfg.ConnectionConfig.Host)
	assert.Equal(t, 500*time.Millisecond, cfg.ConnectionConfig.SlowQueryTime)
	assert.True(t, cfg.ConnectionConfig.EnableMetrics)
	assert.False(t, cfg.ConnectionConfig.EnableTracing)
	assert.Equal(t, 100, cfg.ConnectionConfig.MaxOpenConns)
	assert.Equal(t, 10*time.Second, cfg.ConnectionConfig.ConnectTimeout)

	assert.True(t, cfg.DataMigrateConfig.EnableMigrateOnStartup)
	assert.True(t, cfg.DataMigrateConfig.EnableForeignKey)
	assert.Equal(t, "configs/foreign_keys.yaml", cfg.DataMigrateConfig.ForeignKeyFile)
	assert.Equal(t, "dev", cfg.DataInitConfig.Environment)
	assert.Equal(t, "configs/sql", cfg.DataInitConfig.Filepath)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.yaml")
	require.NoError(t, os.WriteFile(path, []byte("connection:\n  type: sqlite\n  dbname: crm\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.ConnectionConfig.Type)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseConfig([]byte("connection: [not, a, map]"))
	assert.Error(t, err)
}

func TestFactoryEnvOverrides(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_NAME", "file:factory_env?mode=memory")
	t.Setenv("DB_SLOW_QUERY_TIME", "3")
	t.Setenv("DB_ENABLE_METRICS", "true")

	cfg := DefaultConfig()
	cfg.ConnectionConfig.Type = "oracle"
	manager, err := NewDatabaseFactory().CreateFromConfig(cfg)
	require.NoError(t, err)
	require.NotNil(t, manager)

	assert.Equal(t, "sqlite", cfg.ConnectionConfig.Type)
	assert.Equal(t, "file:factory_env?mode=memory", cfg.ConnectionConfig.DBName)
	assert.Equal(t, 3*time.Second, cfg.ConnectionConfig.SlowQueryTime)
	assert.True(t, cfg.ConnectionConfig.EnableMetrics)
}

func TestFactoryRejectsUnknownType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConnectionConfig.Type = "oracle"
	_, err := NewDatabaseFactory().CreateFromConfig(cfg)
	assert.ErrorContains(t, err, "unsupported database type: oracle")

	_, err = NewDatabaseFactory().CreateFromConfig(nil)
	assert.Error(t, err)
}
