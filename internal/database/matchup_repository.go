package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

// DatabasePool defines the interface for database pool operations.
// This interface allows for both real pool and mock pool implementations.
type DatabasePool interface {
	// QueryRow executes a query that is expected to return at most one row.
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	// Exec executes a query without returning any rows.
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	// Query executes a query that returns rows.
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS matchups (
	id             TEXT PRIMARY KEY,
	challenger_id  TEXT NOT NULL,
	opponent_id    TEXT NOT NULL,
	lane           TEXT NOT NULL,
	metrics        JSONB NOT NULL,
	notes          TEXT NOT NULL DEFAULT '',
	sources        JSONB NOT NULL DEFAULT '[]',
	confidence     NUMERIC(4,3) NOT NULL DEFAULT 0,
	last_updated   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (challenger_id, opponent_id, lane)
);
CREATE TABLE IF NOT EXISTS refresh_log (
	id           BIGSERIAL PRIMARY KEY,
	source       TEXT NOT NULL,
	trigger      TEXT NOT NULL,
	status       TEXT NOT NULL,
	item_count   INTEGER NOT NULL DEFAULT 0,
	error        TEXT NOT NULL DEFAULT '',
	started_at   TIMESTAMPTZ NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL
);`

const listMatchupsQuery = `
	SELECT id, challenger_id, opponent_id, lane, metrics, notes, sources, confidence, last_updated
	FROM matchups
	ORDER BY id`

const upsertMatchupQuery = `
	INSERT INTO matchups (id, challenger_id, opponent_id, lane, metrics, notes, sources, confidence, last_updated)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (challenger_id, opponent_id, lane)
	DO UPDATE SET
		metrics = EXCLUDED.metrics,
		notes = EXCLUDED.notes,
		sources = EXCLUDED.sources,
		confidence = EXCLUDED.confidence,
		last_updated = EXCLUDED.last_updated`

const insertRefreshQuery = `
	INSERT INTO refresh_log (source, trigger, status, item_count, error, started_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

const recentRefreshesQuery = `
	SELECT source, trigger, status, item_count, error, started_at, finished_at
	FROM refresh_log
	ORDER BY finished_at DESC
	LIMIT $1`

// MatchupRepository persists curated matchups and the refresh log in PostgreSQL.
type MatchupRepository struct {
	pool DatabasePool
}

func NewMatchupRepository(pool DatabasePool) *MatchupRepository {
	return &MatchupRepository{pool: pool}
}

// EnsureSchema creates the tables if they do not exist.
func (r *MatchupRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// ListMatchups returns every stored matchup. Rows with an unknown lane are rejected.
func (r *MatchupRepository) ListMatchups(ctx context.Context) ([]models.StoredMatchup, error) {
	rows, err := r.pool.Query(ctx, listMatchupsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchups: %w", err)
	}
	defer rows.Close()

	var matchups []models.StoredMatchup
	for rows.Next() {
		var (
			m           models.StoredMatchup
			lane        string
			metricsJSON []byte
			sourcesJSON []byte
			confidence  decimal.Decimal
		)
		if err := rows.Scan(&m.ID, &m.ChallengerID, &m.OpponentID, &lane, &metricsJSON,
			&m.Notes, &sourcesJSON, &confidence, &m.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan matchup: %w", err)
		}
		m.Lane = models.Lane(lane)
		if !m.Lane.Valid() {
			return nil, fmt.Errorf("matchup %s has invalid lane %q", m.ID, lane)
		}
		if err := json.Unmarshal(metricsJSON, &m.Metrics); err != nil {
			return nil, fmt.Errorf("failed to decode metrics for matchup %s: %w", m.ID, err)
		}
		if len(sourcesJSON) > 0 {
			if err := json.Unmarshal(sourcesJSON, &m.Sources); err != nil {
				return nil, fmt.Errorf("failed to decode sources for matchup %s: %w", m.ID, err)
			}
		}
		m.Confidence = confidence.InexactFloat64()
		matchups = append(matchups, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matchups: %w", err)
	}
	return matchups, nil
}

// UpsertMatchup inserts or replaces the matchup for its (challenger, opponent, lane).
func (r *MatchupRepository) UpsertMatchup(ctx context.Context, m models.StoredMatchup) error {
	if !m.Lane.Valid() {
		return fmt.Errorf("invalid lane %q", m.Lane)
	}
	metricsJSON, err := json.Marshal(m.Metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	sources := m.Sources
	if sources == nil {
		sources = []models.DataSource{}
	}
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return fmt.Errorf("failed to encode sources: %w", err)
	}
	updated := m.LastUpdated
	if updated.IsZero() {
		updated = time.Now().UTC()
	}

	confidence := decimal.NewFromFloat(m.Confidence).Round(3)
	if _, err := r.pool.Exec(ctx, upsertMatchupQuery, m.ID, m.ChallengerID, m.OpponentID, string(m.Lane),
		metricsJSON, m.Notes, sourcesJSON, confidence.String(), updated); err != nil {
		return fmt.Errorf("failed to upsert matchup %s: %w", m.ID, err)
	}
	return nil
}

// RecordRefresh appends one entry to the refresh log.
func (r *MatchupRepository) RecordRefresh(ctx context.Context, rec models.RefreshRecord) error {
	if _, err := r.pool.Exec(ctx, insertRefreshQuery, rec.Source, rec.Trigger, string(rec.Status),
		rec.ItemCount, rec.Error, rec.StartedAt, rec.FinishedAt); err != nil {
		return fmt.Errorf("failed to record refresh for %s: %w", rec.Source, err)
	}
	return nil
}

// RecentRefreshes returns the latest refresh log entries, newest first.
func (r *MatchupRepository) RecentRefreshes(ctx context.Context, limit int) ([]models.RefreshRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, recentRefreshesQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query refresh log: %w", err)
	}
	defer rows.Close()

	records := []models.RefreshRecord{}
	for rows.Next() {
		var (
			rec    models.RefreshRecord
			status string
		)
		if err := rows.Scan(&rec.Source, &rec.Trigger, &status, &rec.ItemCount, &rec.Error,
			&rec.StartedAt, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan refresh record: %w", err)
		}
		rec.Status = models.SourceState(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating refresh log: %w", err)
	}
	return records, nil
}
