package repository

import (
	"context"

	"bedboard/internal/domain"
)

// ListFilter narrows a bed listing. Zero values mean "no filter".
type ListFilter struct {
	WardID string
	Status domain.BedStatus
}

// BedsRepo is the store adapter for bed state. Implementations must make
// BookBed and UpdateStatus single atomic operations: the conditional match in
// BookBed is the only concurrency-safety mechanism for bookings, so it cannot
// be split into a read followed by a write.
type BedsRepo interface {
	// GetBed returns the bed or domain.ErrBedNotFound.
	GetBed(ctx context.Context, bedID string) (*domain.Bed, error)

	// ListBeds returns the current snapshot, optionally filtered.
	ListBeds(ctx context.Context, filter ListFilter) ([]*domain.Bed, error)

	// BookBed transitions an available bed to occupied and attaches the
	// patient, in one conditional update matching status=available. Of N
	// concurrent calls against the same available bed exactly one succeeds;
	// the rest get domain.ErrBedUnavailable.
	BookBed(ctx context.Context, bedID string, patient *domain.Patient) (*domain.Bed, error)

	// UpdateStatus sets the bed status in one atomic update. The patient
	// record is cleared whenever the target status is not occupied; target
	// occupied only matches a bed that is already occupied (an idempotent
	// refresh), otherwise domain.ErrInvalidStatus.
	UpdateStatus(ctx context.Context, bedID string, status domain.BedStatus) (*domain.Bed, error)
}

// WardsRepo is the store adapter for ward structure. Mutations happen at
// seed time only.
type WardsRepo interface {
	ListWards(ctx context.Context) ([]*domain.Ward, error)
	GetWard(ctx context.Context, wardID string) (*domain.Ward, error)
	CreateWard(ctx context.Context, ward *domain.Ward) error
	CreateBed(ctx context.Context, bed *domain.Bed) error
}
