package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"saas_simulator/pkg/core/model"
)

// Scenario is a saved business model with identity and timestamps.
type Scenario struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Model     model.BusinessModel `json:"model"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// ScenarioRepo reads and writes scenarios.
//
// Schema (managed outside this package):
//
//	CREATE TABLE IF NOT EXISTS scenarios (
//	  id         UUID PRIMARY KEY,
//	  name       TEXT NOT NULL,
//	  model_json JSONB NOT NULL,
//	  created_at TIMESTAMPTZ NOT NULL,
//	  updated_at TIMESTAMPTZ NOT NULL
//	);
type ScenarioRepo struct{}

// NewScenarioRepo creates a repository instance.
func NewScenarioRepo() *ScenarioRepo {
	return &ScenarioRepo{}
}

// Save upserts a scenario by ID. A zero ID gets a fresh UUID; the assigned
// ID is written back to s.
func (r *ScenarioRepo) Save(ctx context.Context, s *Scenario) error {
	p := GetPool()
	if p == nil {
		return fmt.Errorf("database pool not initialized")
	}

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
		s.CreatedAt = time.Now().UTC()
	}
	s.UpdatedAt = time.Now().UTC()

	blob, err := json.Marshal(s.Model)
	if err != nil {
		return fmt.Errorf("failed to marshal business model: %w", err)
	}

	query := `
		INSERT INTO scenarios (id, name, model_json, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    model_json = EXCLUDED.model_json,
		    updated_at = EXCLUDED.updated_at`

	if _, err := p.Exec(ctx, query, s.ID, s.Name, blob, s.CreatedAt, s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save scenario %s: %w", s.ID, err)
	}
	return nil
}

// Load fetches one scenario by ID.
func (r *ScenarioRepo) Load(ctx context.Context, id uuid.UUID) (*Scenario, error) {
	p := GetPool()
	if p == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var s Scenario
	var blob []byte
	row := p.QueryRow(ctx,
		`SELECT id, name, model_json, created_at, updated_at FROM scenarios WHERE id = $1`, id)
	if err := row.Scan(&s.ID, &s.Name, &blob, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("scenario %s not found", id)
		}
		return nil, fmt.Errorf("failed to load scenario %s: %w", id, err)
	}

	if err := json.Unmarshal(blob, &s.Model); err != nil {
		return nil, fmt.Errorf("corrupt model for scenario %s: %w", id, err)
	}
	return &s, nil
}

// List returns every saved scenario, newest first, without model bodies.
func (r *ScenarioRepo) List(ctx context.Context) ([]Scenario, error) {
	p := GetPool()
	if p == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := p.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM scenarios ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		var s Scenario
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a scenario by ID.
func (r *ScenarioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	p := GetPool()
	if p == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if _, err := p.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	return nil
}
