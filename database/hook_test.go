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
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestQueryHookOutput(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	hook := NewQueryHook("", true, false).WithWriter(&buf)
	runHook(hook, "SELECT 1", nil)
	assert.Empty(t, buf.String(), "successful queries are quiet unless verbose")

	runHook(hook, "DELETE FROM users", errors.New("FOREIGN KEY constraint failed"))
	assert.Contains(t, buf.String(), "[BUN]")
	assert.Contains(t, buf.String(), "DELETE FROM users")
	assert.Contains(t, buf.String(), "*errors.errorString: FOREIGN KEY constraint failed")

	buf.Reset()
	verbose := NewQueryHook("", true, true).WithWriter(&buf)
	runHook(verbose, "SELECT 1", nil)
	assert.Contains(t, buf.String(), "SELECT 1")

	buf.Reset()
	EnableBunSqlSilent(true)
	runHook(verbose, "SELECT 2", nil)
	EnableBunSqlSilent(false)
	assert.Empty(t, buf.String())
}

func TestQueryHookEnvOverride(t *testing.T) {
	var buf bytes.Buffer
	hook := NewQueryHook("CRM_TEST_QUERY_LOG", true, true).WithWriter(&buf)

	t.Setenv("CRM_TEST_QUERY_LOG", "0")
	runHook(hook, "SELECT 1", errors.New("boom"))
	assert.Empty(t, buf.String())

	t.Setenv("CRM_TEST_QUERY_LOG", "1")
	runHook(hook, "SELECT 1", nil)
	assert.Empty(t, buf.String())

	t.Setenv("CRM_TEST_QUERY_LOG", "2")
	runHook(hook, "SELECT 1", nil)
	assert.Contains(t, buf.String(), "SELECT 1")
}

func TestSlowQueryHook(t *testing.T) {
	t.Setenv("BUNDEBUG_SLOW", "1")
	logger := &recordingLogger{}
	hook := NewSlowQueryHook(time.Nanosecond, logger)

	runHook(hook, "SELECT 1", errors.New("failed queries are not timed"))
	assert.Empty(t, logger.warnings())

	time.Sleep(time.Millisecond)
	runHook(hook, "SELECT 1", nil)
	assert.Len(t, logger.warnings(), 1)

	t.Setenv("BUNDEBUG_SLOW", "0")
	runHook(hook, "SELECT 1", nil)
	assert.Len(t, logger.warnings(), 1)
}
