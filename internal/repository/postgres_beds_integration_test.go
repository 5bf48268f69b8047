// +build integration

package repository

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"bedboard/internal/config"
	"bedboard/internal/domain"
	"bedboard/pkg/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		t.Skipf("Skipping integration test: database not available: %v", err)
	}
	return db
}

func createTestBed(t *testing.T, db *sql.DB, bedID string) {
	ctx := context.Background()
	_, err := db.ExecContext(ctx,
		`INSERT INTO wards (ward_id, ward_name)
		 VALUES ('ward_test', 'Test Ward')
		 ON CONFLICT (ward_id) DO NOTHING`)
	if err != nil {
		t.Fatalf("Failed to create test ward: %v", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO beds (bed_id, ward_id, bed_number, status, patient, last_updated)
		 VALUES ($1, 'ward_test', $1, 'available', NULL, NOW())
		 ON CONFLICT (bed_id) DO UPDATE SET status = 'available', patient = NULL`,
		bedID)
	if err != nil {
		t.Fatalf("Failed to create test bed: %v", err)
	}
}

func cleanupTestBeds(t *testing.T, db *sql.DB) {
	ctx := context.Background()
	_, _ = db.ExecContext(ctx, `DELETE FROM beds WHERE ward_id = 'ward_test'`)
	_, _ = db.ExecContext(ctx, `DELETE FROM wards WHERE ward_id = 'ward_test'`)
}

func TestPostgresBookBed_ConditionalUpdate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	defer cleanupTestBeds(t, db)
	createTestBed(t, db, "itest_bed_1")

	repo := NewPostgresBedsRepo(db)
	ctx := context.Background()

	bed, err := repo.BookBed(ctx, "itest_bed_1", &domain.Patient{
		Name: "Alice", Age: 30, Contact: "555", MedicalReason: "flu",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if bed.Status != domain.StatusOccupied || bed.Patient == nil {
		t.Fatalf("expected occupied bed with patient, got %+v", bed)
	}

	_, err = repo.BookBed(ctx, "itest_bed_1", &domain.Patient{
		Name: "Bob", Age: 41, Contact: "556", MedicalReason: "surgery",
	})
	if err != domain.ErrBedUnavailable {
		t.Fatalf("expected ErrBedUnavailable, got %v", err)
	}

	_, err = repo.BookBed(ctx, "itest_missing", &domain.Patient{
		Name: "Bob", Age: 41, Contact: "556", MedicalReason: "surgery",
	})
	if err != domain.ErrBedNotFound {
		t.Fatalf("expected ErrBedNotFound, got %v", err)
	}
}

// The store's compare-and-set is the sole arbiter: with real connections,
// N concurrent bookings of one bed commit exactly once.
func TestPostgresBookBed_ConcurrentSingleWinner(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	defer cleanupTestBeds(t, db)
	createTestBed(t, db, "itest_bed_2")

	repo := NewPostgresBedsRepo(db)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.BookBed(ctx, "itest_bed_2", &domain.Patient{
				Name: "P", Age: 20 + i, Contact: "555", MedicalReason: "checkup",
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		switch err {
		case nil:
			wins++
		case domain.ErrBedUnavailable:
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}

func TestPostgresUpdateStatus_ClearsPatient(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	defer cleanupTestBeds(t, db)
	createTestBed(t, db, "itest_bed_3")

	repo := NewPostgresBedsRepo(db)
	ctx := context.Background()

	if _, err := repo.BookBed(ctx, "itest_bed_3", &domain.Patient{
		Name: "Alice", Age: 30, Contact: "555", MedicalReason: "flu",
	}); err != nil {
		t.Fatalf("book: %v", err)
	}

	bed, err := repo.UpdateStatus(ctx, "itest_bed_3", domain.StatusAvailable)
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if bed.Status != domain.StatusAvailable || bed.Patient != nil {
		t.Fatalf("expected available bed with no patient, got %+v", bed)
	}

	// occupied is not a valid administrative target for a free bed
	if _, err := repo.UpdateStatus(ctx, "itest_bed_3", domain.StatusOccupied); err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
