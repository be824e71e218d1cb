package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"livestock-assessment/internal/domain/records"
)

// RecordsSchema crea la tabla del catálogo. detail es NULL para animales sin ficha.
const RecordsSchema = `
CREATE TABLE IF NOT EXISTS animals (
	position      INTEGER NOT NULL,
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	breed         TEXT NOT NULL,
	species       TEXT NOT NULL,
	score         INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
	image         TEXT NOT NULL DEFAULT '',
	last_assessed TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	detail        JSONB
)`

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

var _ records.Repository = (*RecordsRepo)(nil)

func (r *RecordsRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, RecordsSchema)
	return err
}

// Import reemplaza el catálogo completo dentro de una transacción.
func (r *RecordsRepo) Import(ctx context.Context, list []records.AnimalRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM animals`); err != nil {
		return err
	}

	for i, a := range list {
		detail, err := encodeDetail(a.Detail)
		if err != nil {
			return fmt.Errorf("animal %s: %w", a.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO animals (
				position, id,
				name, breed, species, score,
				image, last_assessed, status,
				detail
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`,
			i,
			a.ID,
			a.Name,
			a.Breed,
			a.Species,
			a.Score,
			a.Image,
			a.LastAssessed,
			a.Status,
			detail,
		); err != nil {
			return fmt.Errorf("animal %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

func (r *RecordsRepo) List(ctx context.Context) ([]records.AnimalRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id,
			name, breed, species, score,
			image, last_assessed, status,
			detail
		FROM animals
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.AnimalRecord, 0)
	for rows.Next() {
		a, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *RecordsRepo) Get(ctx context.Context, id string) (records.AnimalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return records.AnimalRecord{}, records.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id,
			name, breed, species, score,
			image, last_assessed, status,
			detail
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return records.AnimalRecord{}, records.ErrNotFound
		}
		return records.AnimalRecord{}, err
	}
	return a, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (records.AnimalRecord, error) {
	var a records.AnimalRecord
	var detail []byte
	if err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Breed,
		&a.Species,
		&a.Score,
		&a.Image,
		&a.LastAssessed,
		&a.Status,
		&detail,
	); err != nil {
		return records.AnimalRecord{}, err
	}

	d, err := decodeDetail(detail)
	if err != nil {
		return records.AnimalRecord{}, fmt.Errorf("animal %s: %w", a.ID, err)
	}
	a.Detail = d
	return a, nil
}

// detail viaja como JSONB; NULL = sin ficha
func encodeDetail(d *records.Detail) (any, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeDetail(b []byte) (*records.Detail, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var d records.Detail
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
