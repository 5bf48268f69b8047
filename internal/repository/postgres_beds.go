package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"bedboard/internal/domain"
)

type PostgresBedsRepo struct {
	db *sql.DB
}

func NewPostgresBedsRepo(db *sql.DB) *PostgresBedsRepo {
	return &PostgresBedsRepo{db: db}
}

const bedColumns = `
	bed_id,
	ward_id,
	bed_number,
	status,
	patient,
	last_updated
`

// scanBed scans one bed row. patient is a nullable JSONB column.
func scanBed(row interface{ Scan(...any) error }) (*domain.Bed, error) {
	var b domain.Bed
	var status string
	var patientJSON []byte
	if err := row.Scan(&b.BedID, &b.WardID, &b.BedNumber, &status, &patientJSON, &b.LastUpdated); err != nil {
		return nil, err
	}
	b.Status = domain.BedStatus(status)
	if len(patientJSON) > 0 {
		var p domain.Patient
		if err := json.Unmarshal(patientJSON, &p); err != nil {
			return nil, fmt.Errorf("decode patient for bed %s: %w", b.BedID, err)
		}
		b.Patient = &p
	}
	return &b, nil
}

// storeErr classifies driver/connection failures as transient.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func (r *PostgresBedsRepo) GetBed(ctx context.Context, bedID string) (*domain.Bed, error) {
	q := `SELECT ` + bedColumns + ` FROM beds WHERE bed_id = $1`
	bed, err := scanBed(r.db.QueryRowContext(ctx, q, bedID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrBedNotFound
		}
		return nil, storeErr(err)
	}
	return bed, nil
}

func (r *PostgresBedsRepo) ListBeds(ctx context.Context, filter ListFilter) ([]*domain.Bed, error) {
	where := "1=1"
	args := []any{}
	argIdx := 1
	if filter.WardID != "" {
		where += fmt.Sprintf(" AND ward_id = $%d", argIdx)
		args = append(args, filter.WardID)
		argIdx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}

	q := `SELECT ` + bedColumns + ` FROM beds WHERE ` + where + ` ORDER BY ward_id, bed_number`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	out := []*domain.Bed{}
	for rows.Next() {
		bed, err := scanBed(rows)
		if err != nil {
			return nil, storeErr(err)
		}
		out = append(out, bed)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// BookBed is the single compare-and-set that arbitrates concurrent bookings:
// the status=available match and the write happen in one statement, so of N
// racing callers the store commits exactly one.
func (r *PostgresBedsRepo) BookBed(ctx context.Context, bedID string, patient *domain.Patient) (*domain.Bed, error) {
	patientJSON, err := json.Marshal(patient)
	if err != nil {
		return nil, fmt.Errorf("encode patient: %w", err)
	}

	q := `
		UPDATE beds
		SET status = 'occupied',
		    patient = $2,
		    last_updated = NOW()
		WHERE bed_id = $1 AND status = 'available'
		RETURNING ` + bedColumns
	bed, err := scanBed(r.db.QueryRowContext(ctx, q, bedID, patientJSON))
	if err == nil {
		return bed, nil
	}
	if err != sql.ErrNoRows {
		return nil, storeErr(err)
	}

	// Zero rows matched: the bed is missing or lost the race. The probe is
	// only for picking the error; the booking decision was already made
	// atomically above.
	if _, getErr := r.GetBed(ctx, bedID); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrBedUnavailable
}

// UpdateStatus applies an administrative status change in one atomic update
// (no read-modify-write round trip). Exiting occupied always clears the
// patient record; target occupied only refreshes a bed that is already
// occupied, since the only way into occupied is BookBed.
func (r *PostgresBedsRepo) UpdateStatus(ctx context.Context, bedID string, status domain.BedStatus) (*domain.Bed, error) {
	cond := ""
	if status == domain.StatusOccupied {
		cond = " AND status = 'occupied'"
	}

	q := `
		UPDATE beds
		SET status = $2,
		    patient = CASE WHEN $2 = 'occupied' THEN patient ELSE NULL END,
		    last_updated = NOW()
		WHERE bed_id = $1` + cond + `
		RETURNING ` + bedColumns
	bed, err := scanBed(r.db.QueryRowContext(ctx, q, bedID, string(status)))
	if err == nil {
		return bed, nil
	}
	if err != sql.ErrNoRows {
		return nil, storeErr(err)
	}

	if _, getErr := r.GetBed(ctx, bedID); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrInvalidStatus
}
