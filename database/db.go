package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"tripform/services"
)

var ErrNotFound = errors.New("plan not found")

const (
	SourceLive = "live"
	SourceDemo = "demo"
)

// ─── Models ──────────────────────────────────────────────────────────────────

// PlanRecord is one resolved submission.
type PlanRecord struct {
	ID        string               `json:"id"`
	Request   services.TripRequest `json:"request"`
	Plan      *services.TravelPlan `json:"plan"`
	Source    string               `json:"source"`
	CreatedAt time.Time            `json:"created_at"`
}

// Archive stores resolved plans so they can be fetched again by id.
type Archive interface {
	SavePlan(ctx context.Context, rec *PlanRecord) error
	GetPlan(ctx context.Context, id string) (*PlanRecord, error)
	Ping(ctx context.Context) error
}

// ─── Postgres ────────────────────────────────────────────────────────────────

type PostgresArchive struct {
	db *sql.DB
}

// Open connects to Postgres, waiting for it to come up, and creates the
// schema when missing.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresArchive, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		logger.Warn("waiting for database", "attempt", i+1, "error", err)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database after retries: %w", err)
	}

	a := &PostgresArchive{db: db}
	if err := a.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func (a *PostgresArchive) Close() error {
	return a.db.Close()
}

func (a *PostgresArchive) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS plans (
			id           TEXT PRIMARY KEY,
			destination  TEXT NOT NULL,
			request_json TEXT NOT NULL,
			plan_json    TEXT NOT NULL,
			source       TEXT NOT NULL,
			created_at   TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_plans_created_at
			ON plans(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := a.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (a *PostgresArchive) SavePlan(ctx context.Context, rec *PlanRecord) error {
	requestJSON, err := json.Marshal(rec.Request)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	planJSON, err := encodePlan(rec.Plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO plans (id, destination, request_json, plan_json, source)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.Request.Destination, string(requestJSON), string(planJSON), rec.Source)
	return err
}

func (a *PostgresArchive) GetPlan(ctx context.Context, id string) (*PlanRecord, error) {
	var (
		rec                   PlanRecord
		requestJSON, planJSON string
	)
	err := a.db.QueryRowContext(ctx, `
		SELECT id, request_json, plan_json, source, created_at
		FROM plans WHERE id = $1`, id).
		Scan(&rec.ID, &requestJSON, &planJSON, &rec.Source, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(requestJSON), &rec.Request); err != nil {
		return nil, fmt.Errorf("decode stored request: %w", err)
	}
	if rec.Plan, err = decodeStoredPlan(rec.Source, []byte(planJSON)); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (a *PostgresArchive) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// A live plan is stored as the planning service sent it, byte for byte.
func encodePlan(plan *services.TravelPlan) ([]byte, error) {
	if plan != nil {
		if body := plan.Body(); body != nil {
			return body, nil
		}
	}
	return json.Marshal(plan)
}

// Live plans are decoded the way the planning service response was, so the
// stored body is served back unchanged.
func decodeStoredPlan(source string, data []byte) (*services.TravelPlan, error) {
	if source == SourceLive {
		plan, err := services.DecodeTravelPlan(data)
		if err != nil {
			return nil, fmt.Errorf("decode stored plan: %w", err)
		}
		return plan, nil
	}
	var plan services.TravelPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode stored plan: %w", err)
	}
	return &plan, nil
}

// ─── Memory ──────────────────────────────────────────────────────────────────

// MemoryArchive is used when no database is configured.
type MemoryArchive struct {
	mu    sync.RWMutex
	plans map[string]PlanRecord
	now   func() time.Time
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{plans: make(map[string]PlanRecord), now: time.Now}
}

func (m *MemoryArchive) SavePlan(_ context.Context, rec *PlanRecord) error {
	if rec.ID == "" {
		return errors.New("plan record needs an id")
	}
	stored := *rec
	stored.Request = rec.Request.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.plans[rec.ID]; exists {
		return fmt.Errorf("plan %s already stored", rec.ID)
	}
	m.plans[rec.ID] = stored
	return nil
}

func (m *MemoryArchive) GetPlan(_ context.Context, id string) (*PlanRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.plans[id]
	if !ok {
		return nil, ErrNotFound
	}
	rec.Request = rec.Request.Clone()
	return &rec, nil
}

func (m *MemoryArchive) Ping(context.Context) error {
	return nil
}
