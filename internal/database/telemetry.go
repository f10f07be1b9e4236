package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BaronguyenVinasu/riftcounter/internal/telemetry"
)

// slowQueryThreshold marks queries worth a warning log.
const slowQueryThreshold = 500 * time.Millisecond

// TracedDB wraps a pool with a span per statement.
type TracedDB struct {
	pool   DatabasePool
	logger *logrus.Logger
}

// NewTracedDB creates a new traced database connection
func NewTracedDB(pool DatabasePool, logger *logrus.Logger) *TracedDB {
	return &TracedDB{pool: pool, logger: logger}
}

// Query executes a query that returns rows.
func (db *TracedDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.GetDatabaseTracer(), "db.query",
		attribute.String("db.system", "postgresql"),
		attribute.String("db.statement", sql),
	)
	defer span.End()

	start := time.Now()
	rows, err := db.pool.Query(ctx, sql, args...)
	db.observe(sql, time.Since(start), err)
	telemetry.RecordError(span, err)
	return rows, err
}

// QueryRow executes a query that returns a single row. Scan errors surface
// to the caller; the span only covers dispatch.
func (db *TracedDB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	ctx, span := telemetry.StartSpan(ctx, telemetry.GetDatabaseTracer(), "db.query_row",
		attribute.String("db.system", "postgresql"),
		attribute.String("db.statement", sql),
	)
	defer span.End()

	start := time.Now()
	row := db.pool.QueryRow(ctx, sql, args...)
	db.observe(sql, time.Since(start), nil)
	return row
}

// Exec executes a query without returning rows.
func (db *TracedDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.GetDatabaseTracer(), "db.exec",
		attribute.String("db.system", "postgresql"),
		attribute.String("db.statement", sql),
	)
	defer span.End()

	start := time.Now()
	tag, err := db.pool.Exec(ctx, sql, args...)
	db.observe(sql, time.Since(start), err)
	telemetry.RecordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int64("db.rows_affected", tag.RowsAffected()))
	}
	return tag, err
}

func (db *TracedDB) observe(sql string, d time.Duration, err error) {
	if db.logger == nil {
		return
	}
	entry := db.logger.WithFields(logrus.Fields{"duration_ms": d.Milliseconds(), "query": sql})
	switch {
	case err != nil:
		entry.WithError(err).Warn("Database statement failed")
	case d > slowQueryThreshold:
		entry.Warn("Slow database statement")
	default:
		entry.Debug("Database statement")
	}
}
