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
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type logEntry struct {
	level  LogLevel
	msg    string
	fields []interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level LogLevel, msg string, fields []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level, msg, fields})
}

func (l *recordingLogger) SetLevel(LogLevel) {}
func (l *recordingLogger) Debug(msg string, fields ...interface{}) { l.record(LogLevelDebug, msg, fields) }
func (l *recordingLogger) Info(msg string, fields ...interface{}) { l.record(LogLevelInfo, msg, fields) }
func (l *recordingLogger) Warn(msg string, fields ...interface{}) { l.record(LogLevelWarn, msg, fields) }
func (l *recordingLogger) Error(msg string, fields ...interface{}) { l.record(LogLevelError, msg, fields) }

func (l *recordingLogger) warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var msgs []string
	for _, e := range l.entries {
		if e.level == LogLevelWarn {
			msgs = append(msgs, e.msg)
		}
	}
	return msgs
}

var memorySeq int

// openMemory connects a manager to a private in-memory SQLite database.
func openMemory(t *testing.T) *bun.DB {
	t.Helper()
	memorySeq++
	cfg := DefaultConfig()
	cfg.ConnectionConfig.Type = "sqlite"
	cfg.ConnectionConfig.DBName = fmt.Sprintf("file:database_internal_%d?mode=memory&cache=shared", memorySeq)
	cfg.ConnectionConfig.HealthCheckInterval = 0
	cfg.ConnectionConfig.SlowQueryTime = 0

	manager := NewDatabaseManager(cfg)
	manager.SetLogger(&recordingLogger{})
	require.NoError(t, manager.Connect(context.Background()))
	t.Cleanup(func() { _ = manager.Disconnect() })
	return manager.GetDB()
}
