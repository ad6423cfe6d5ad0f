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

package utils

import (
	"encoding/json"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry() *logrus.Entry {
	entry := logrus.NewEntry(logrus.New())
	entry.Time = time.Date(2024, time.May, 1, 8, 30, 0, 0, time.UTC)
	entry.Level = logrus.WarnLevel
	entry.Message = "slow query"
	entry.Data = logrus.Fields{"table": "leads", "err": errors.New("boom")}
	entry.Caller = &runtime.Frame{File: "/src/crm/database/hook.go", Line: 42}
	return entry
}

func TestLog4jColorFormatter(t *testing.T) {
	f := &Log4jColorFormatter{LoggerName: "database", NameWidth: 4}
	b, err := f.Format(testEntry())
	require.NoError(t, err)

	line := string(b)
	assert.True(t, strings.HasPrefix(line, "2024-05-01 08:30:00.000 WARNING "))
	assert.Contains(t, line, "- data database/hook.go:42 : slow query err=boom table=leads\n")
	assert.NotContains(t, line, "\x1b[")
}

func TestJSONLogFormatter(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "database"}
	b, err := f.Format(testEntry())
	require.NoError(t, err)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Equal(t, "warning", rec["level"])
	assert.Equal(t, "database", rec["logger"])
	assert.Equal(t, "database/hook.go:42", rec["caller"])
	assert.Equal(t, map[string]interface{}{"table": "leads", "err": "boom"}, rec["fields"])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLogLevel(" DEBUG "))
	assert.Equal(t, logrus.WarnLevel, ParseLogLevel("warning"))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel("verbose"))
}

func TestSetLoggerLevel(t *testing.T) {
	l := NewLogger("utils-test")
	assert.True(t, SetLoggerLevel("utils-test", "error"))
	assert.Equal(t, logrus.ErrorLevel, l.GetLevel())
	assert.False(t, SetLoggerLevel("missing", "error"))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("CRM_TEST_STRING", "x")
	t.Setenv("CRM_TEST_BOOL", "true")
	t.Setenv("CRM_TEST_BAD_BOOL", "maybe")
	t.Setenv("CRM_TEST_DURATION", "1500ms")
	t.Setenv("CRM_TEST_SECONDS", "3")
	t.Setenv("CRM_TEST_INT", "42")

	assert.Equal(t, "x", EnvDefaultString("CRM_TEST_STRING", "y"))
	assert.Equal(t, "y", EnvDefaultString("CRM_TEST_UNSET", "y"))
	assert.True(t, EnvDefaultBool("CRM_TEST_BOOL", false))
	assert.True(t, EnvDefaultBool("CRM_TEST_BAD_BOOL", true))
	assert.Equal(t, 1500*time.Millisecond, EnvDefaultDuration("CRM_TEST_DURATION", 0))
	assert.Equal(t, 3*time.Second, EnvDefaultDuration("CRM_TEST_SECONDS", 0))
	assert.Equal(t, time.Minute, EnvDefaultDuration("CRM_TEST_UNSET", time.Minute))
	assert.Equal(t, 42, EnvDefaultInt("CRM_TEST_INT", 0))
	assert.Equal(t, 7, EnvDefaultInt("CRM_TEST_UNSET", 7))
}
