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

// Package testdb opens migrated in-memory SQLite databases for tests.
package testdb

import (
	"context"
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomoncle/crm/database"
	_ "github.com/tomoncle/crm/model"
	"github.com/uptrace/bun"
)

var (
	seq      atomic.Int64
	unsafeRe = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// Config returns a connection config for a private in-memory database named
// after the test.
func Config(t testing.TB) *database.Config {
	cfg := database.DefaultConfig()
	cfg.ConnectionConfig.Type = "sqlite"
	cfg.ConnectionConfig.DBName = fmt.Sprintf("file:%s_%d?mode=memory&cache=shared",
		unsafeRe.ReplaceAllString(t.Name(), "_"), seq.Add(1))
	cfg.ConnectionConfig.HealthCheckInterval = 0
	cfg.ConnectionConfig.SlowQueryTime = 0
	cfg.ConnectionConfig.EnableReconnect = false
	cfg.DataInitConfig.Filepath = t.TempDir()
	return cfg
}

// Open connects to a fresh in-memory database, creates every registered
// table and closes the connection when the test ends.
func Open(t testing.TB) *bun.DB {
	t.Helper()
	return OpenWithConfig(t, Config(t))
}

// OpenWithConfig is Open for a caller-adjusted config.
func OpenWithConfig(t testing.TB, cfg *database.Config) *bun.DB {
	t.Helper()
	ctx := context.Background()

	manager := database.NewDatabaseManager(cfg)
	require.NoError(t, manager.Connect(ctx))
	t.Cleanup(func() { _ = manager.Disconnect() })
	require.NoError(t, manager.RunMigrations(ctx))

	db := manager.GetDB()
	db.RegisterModel(database.RegisteredModelInstances()...)
	return db
}
