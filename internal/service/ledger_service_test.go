package service

import (
	"context"
	"sync"
	"testing"

	"bedboard/internal/domain"
	"bedboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLedger(t *testing.T) (*LedgerService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.CreateWard(ctx, &domain.Ward{WardID: "ward_1", WardName: "General Ward"}))
	require.NoError(t, store.CreateBed(ctx, &domain.Bed{BedID: "gen_1", WardID: "ward_1", BedNumber: "G1"}))
	require.NoError(t, store.CreateBed(ctx, &domain.Bed{BedID: "gen_2", WardID: "ward_1", BedNumber: "G2"}))
	return NewLedgerService(store, store, zap.NewNop()), store
}

func TestBook_AvailableBed(t *testing.T) {
	ledger, _ := newTestLedger(t)

	bed, err := ledger.Book(context.Background(), "gen_1", &domain.Patient{
		Name: "Alice", Age: 30, Contact: "555", MedicalReason: "flu",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOccupied, bed.Status)
	require.NotNil(t, bed.Patient)
	assert.Equal(t, "Alice", bed.Patient.Name)
}

func TestBook_OccupiedBedRejected(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Book(ctx, "gen_1", &domain.Patient{Name: "Alice", Age: 30, Contact: "555", MedicalReason: "flu"})
	require.NoError(t, err)

	_, err = ledger.Book(ctx, "gen_1", &domain.Patient{Name: "Bob", Age: 41, Contact: "556", MedicalReason: "surgery"})
	assert.ErrorIs(t, err, domain.ErrBedUnavailable)

	// the bed is unchanged
	bed, err := ledger.Bed(ctx, "gen_1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", bed.Patient.Name)
}

func TestBook_UnknownBed(t *testing.T) {
	ledger, _ := newTestLedger(t)
	_, err := ledger.Book(context.Background(), "missing", &domain.Patient{
		Name: "Alice", Age: 30, Contact: "555", MedicalReason: "flu",
	})
	assert.ErrorIs(t, err, domain.ErrBedNotFound)
}

func TestBook_MalformedPatientRejectedBeforeStore(t *testing.T) {
	store := &countingBedsRepo{}
	ledger := NewLedgerService(store, repository.NewMemoryStore(), zap.NewNop())

	cases := []*domain.Patient{
		nil,
		{Name: "", Age: 30, Contact: "555", MedicalReason: "flu"},
		{Name: "Alice", Age: 0, Contact: "555", MedicalReason: "flu"},
		{Name: "Alice", Age: 30, Contact: "", MedicalReason: "flu"},
		{Name: "Alice", Age: 30, Contact: "555", MedicalReason: "  "},
	}
	for _, p := range cases {
		_, err := ledger.Book(context.Background(), "gen_1", p)
		assert.ErrorIs(t, err, domain.ErrInvalidPatient)
	}
	assert.Zero(t, store.calls, "invalid input must never reach the store")
}

func TestSetStatus_ReleaseClearsPatient(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Book(ctx, "gen_1", &domain.Patient{Name: "Alice", Age: 30, Contact: "555", MedicalReason: "flu"})
	require.NoError(t, err)

	bed, err := ledger.SetStatus(ctx, "gen_1", "Available")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, bed.Status)
	assert.Nil(t, bed.Patient)
}

func TestSetStatus_UnknownStatusRejectedBeforeStore(t *testing.T) {
	store := &countingBedsRepo{}
	ledger := NewLedgerService(store, repository.NewMemoryStore(), zap.NewNop())

	_, err := ledger.SetStatus(context.Background(), "gen_1", "Orbiting")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Zero(t, store.calls, "invalid status must never reach the store")
}

func TestSetStatus_AcceptsLegacyAlias(t *testing.T) {
	ledger, _ := newTestLedger(t)

	bed, err := ledger.SetStatus(context.Background(), "gen_1", "Under Maintenance")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMaintenance, bed.Status)
}

func TestList_IdempotentSnapshot(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	first, err := ledger.List(ctx, "", "")
	require.NoError(t, err)
	second, err := ledger.List(ctx, "", "")
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].BedID, second[i].BedID)
		assert.Equal(t, first[i].Status, second[i].Status)
	}
}

func TestMetrics_AfterConcurrentBooking(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	// two simultaneous bookings of the same bed: exactly one wins
	var wg sync.WaitGroup
	errs := make([]error, 2)
	patients := []*domain.Patient{
		{Name: "Alice", Age: 30, Contact: "555", MedicalReason: "flu"},
		{Name: "Bob", Age: 41, Contact: "556", MedicalReason: "surgery"},
	}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Book(ctx, "gen_1", patients[i])
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrBedUnavailable)
		}
	}
	assert.Equal(t, 1, succeeded)

	m, err := ledger.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Total)
	assert.Equal(t, 1, m.Occupied)
	assert.Equal(t, 1, m.Available)
	assert.InDelta(t, 0.5, m.OccupancyRate, 1e-9)

	require.Len(t, m.Wards, 1)
	assert.Equal(t, 1, m.Wards[0].Occupied)
}

func TestMetrics_EmptyStore(t *testing.T) {
	store := repository.NewMemoryStore()
	ledger := NewLedgerService(store, store, zap.NewNop())

	m, err := ledger.Metrics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, m.Total)
	assert.Zero(t, m.OccupancyRate)
}

// countingBedsRepo fails the test if the ledger reaches the store at all.
type countingBedsRepo struct {
	calls int
}

func (r *countingBedsRepo) GetBed(context.Context, string) (*domain.Bed, error) {
	r.calls++
	return nil, domain.ErrBedNotFound
}

func (r *countingBedsRepo) ListBeds(context.Context, repository.ListFilter) ([]*domain.Bed, error) {
	r.calls++
	return nil, nil
}

func (r *countingBedsRepo) BookBed(context.Context, string, *domain.Patient) (*domain.Bed, error) {
	r.calls++
	return nil, domain.ErrBedNotFound
}

func (r *countingBedsRepo) UpdateStatus(context.Context, string, domain.BedStatus) (*domain.Bed, error) {
	r.calls++
	return nil, domain.ErrBedNotFound
}
