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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/uptrace/bun"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_db_queries_total",
		Help: "Total number of database queries by operation and result",
	}, []string{"operation", "result"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crm_db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// MetricsHook records a counter and a latency histogram per query.
type MetricsHook struct{}

var _ bun.QueryHook = (*MetricsHook)(nil)

func NewMetricsHook() *MetricsHook {
	return &MetricsHook{}
}

func (h *MetricsHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *MetricsHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	ObserveQuery(event.Operation(), queryResult(event.Err), event.StartTime)
}

func queryResult(err error) string {
	switch {
	case err == nil, errors.Is(err, sql.ErrNoRows):
		return "ok"
	default:
		_, kind := IsSqlError(err)
		if kind == UnknownErr {
			return "error"
		}
		return kind.String()
	}
}

// ObserveQuery records one query that began at start.
func ObserveQuery(operation, result string, start time.Time) {
	queriesTotal.WithLabelValues(operation, result).Inc()
	queryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
