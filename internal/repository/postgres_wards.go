package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"bedboard/internal/domain"
)

type PostgresWardsRepo struct {
	db *sql.DB
}

func NewPostgresWardsRepo(db *sql.DB) *PostgresWardsRepo {
	return &PostgresWardsRepo{db: db}
}

func (r *PostgresWardsRepo) ListWards(ctx context.Context) ([]*domain.Ward, error) {
	q := `SELECT ward_id, ward_name FROM wards ORDER BY ward_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	out := []*domain.Ward{}
	for rows.Next() {
		var w domain.Ward
		if err := rows.Scan(&w.WardID, &w.WardName); err != nil {
			return nil, storeErr(err)
		}
		out = append(out, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (r *PostgresWardsRepo) GetWard(ctx context.Context, wardID string) (*domain.Ward, error) {
	q := `SELECT ward_id, ward_name FROM wards WHERE ward_id = $1`
	var w domain.Ward
	err := r.db.QueryRowContext(ctx, q, wardID).Scan(&w.WardID, &w.WardName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrWardNotFound
		}
		return nil, storeErr(err)
	}
	return &w, nil
}

func (r *PostgresWardsRepo) CreateWard(ctx context.Context, ward *domain.Ward) error {
	q := `
		INSERT INTO wards (ward_id, ward_name)
		VALUES ($1, $2)
		ON CONFLICT (ward_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, q, ward.WardID, ward.WardName); err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *PostgresWardsRepo) CreateBed(ctx context.Context, bed *domain.Bed) error {
	status := bed.Status
	if status == "" {
		status = domain.StatusAvailable
	}
	var patientJSON []byte
	if bed.Patient != nil {
		var err error
		patientJSON, err = json.Marshal(bed.Patient)
		if err != nil {
			return err
		}
	}

	q := `
		INSERT INTO beds (bed_id, ward_id, bed_number, status, patient, last_updated)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (bed_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, q, bed.BedID, bed.WardID, bed.BedNumber, string(status), patientJSON); err != nil {
		return storeErr(err)
	}
	return nil
}
