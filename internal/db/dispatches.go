package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kube-rca/pizza-observability/internal/model"
)

// EnsureDispatchSchema - create order_dispatches if missing
func (p *Postgres) EnsureDispatchSchema(ctx context.Context) error {
	_, err := p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS order_dispatches (
			id            UUID         PRIMARY KEY,
			alert_name    TEXT         NOT NULL DEFAULT '',
			backend       TEXT         NOT NULL,
			outcome       TEXT         NOT NULL,
			stage         TEXT         NOT NULL DEFAULT '',
			order_id      TEXT         NOT NULL DEFAULT '',
			resource_name TEXT         NOT NULL DEFAULT '',
			namespace     TEXT         NOT NULL DEFAULT '',
			error         TEXT         NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS order_dispatches_created_at_idx
			ON order_dispatches (created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to create order_dispatches table: %w", err)
	}
	return nil
}

// InsertDispatch - append one dispatch outcome
func (p *Postgres) InsertDispatch(ctx context.Context, rec model.DispatchRecord) error {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("invalid dispatch id %q: %w", rec.ID, err)
	}
	_, err = p.Pool.Exec(ctx, `
		INSERT INTO order_dispatches
			(id, alert_name, backend, outcome, stage, order_id, resource_name, namespace, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`, id, rec.AlertName, rec.Backend, rec.Outcome, rec.Stage, rec.OrderID,
		rec.ResourceName, rec.Namespace, rec.Error, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert dispatch: %w", err)
	}
	return nil
}

// ListDispatches - newest first
func (p *Postgres) ListDispatches(ctx context.Context, limit int) ([]model.DispatchRecord, error) {
	rows, err := p.Pool.Query(ctx, `
		SELECT id, alert_name, backend, outcome, stage, order_id, resource_name, namespace, error, created_at
		FROM order_dispatches
		ORDER BY created_at DESC
		LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatches: %w", err)
	}
	defer rows.Close()

	var records []model.DispatchRecord
	for rows.Next() {
		var rec model.DispatchRecord
		var id uuid.UUID
		if err := rows.Scan(&id, &rec.AlertName, &rec.Backend, &rec.Outcome, &rec.Stage, &rec.OrderID,
			&rec.ResourceName, &rec.Namespace, &rec.Error, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dispatch: %w", err)
		}
		rec.ID = id.String()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dispatches: %w", err)
	}
	if records == nil {
		records = []model.DispatchRecord{}
	}
	return records, nil
}
