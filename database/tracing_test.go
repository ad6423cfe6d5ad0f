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
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()
	return recorder, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
}

func runHook(hook bun.QueryHook, query string, err error) {
	event := &bun.QueryEvent{Query: query, StartTime: time.Now(), Err: err}
	ctx := hook.BeforeQuery(context.Background(), event)
	hook.AfterQuery(ctx, event)
}

func TestTracingHookSpan(t *testing.T) {
	recorder, tp := newRecorder()
	hook := NewTracingHook(tp, "sqlite")

	runHook(hook, `SELECT "lead"."id" FROM "leads" AS "lead"`, nil)
	runHook(hook, `SELECT 1`, sql.ErrNoRows)
	runHook(hook, `INSERT INTO "users" ("email") VALUES ('a@b.c')`, errors.New("UNIQUE constraint failed"))

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	first := spans[0]
	assert.Equal(t, "db.SELECT", first.Name())
	assert.Equal(t, trace.SpanKindClient, first.SpanKind())
	assert.Contains(t, first.Attributes(), attribute.String("db.system", "sqlite"))
	assert.Contains(t, first.Attributes(), attribute.String("db.statement", `SELECT "lead"."id" FROM "leads" AS "lead"`))
	assert.Equal(t, codes.Unset, first.Status().Code)

	assert.Equal(t, codes.Unset, spans[1].Status().Code, "no rows is not a failure")

	failed := spans[2]
	assert.Equal(t, "db.INSERT", failed.Name())
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Len(t, failed.Events(), 1)
}

func TestTracingHookOnDB(t *testing.T) {
	recorder, tp := newRecorder()
	db := openMemory(t)
	db.AddQueryHook(NewTracingHook(tp, db.Dialect().Name().String()))

	var n int
	require.NoError(t, db.NewSelect().ColumnExpr("1").Scan(context.Background(), &n))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes(), attribute.String("db.operation", "SELECT"))
}
