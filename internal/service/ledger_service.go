package service

import (
	"context"

	"bedboard/internal/domain"
	"bedboard/internal/repository"

	"go.uber.org/zap"
)

// LedgerService owns the booking contract on top of the store adapter.
// It validates input before any store round trip and returns the typed
// failures from internal/domain; it never holds bed state itself, the store
// is the single source of truth.
type LedgerService struct {
	beds   repository.BedsRepo
	wards  repository.WardsRepo
	logger *zap.Logger
}

func NewLedgerService(beds repository.BedsRepo, wards repository.WardsRepo, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		beds:   beds,
		wards:  wards,
		logger: logger,
	}
}

// Book reserves an available bed for a patient. Concurrency safety is
// delegated entirely to the store's conditional update: the loser of a race
// gets domain.ErrBedUnavailable, never a silent overwrite.
func (s *LedgerService) Book(ctx context.Context, bedID string, patient *domain.Patient) (*domain.Bed, error) {
	if bedID == "" {
		return nil, domain.ErrBedNotFound
	}
	if err := patient.Validate(); err != nil {
		return nil, err
	}

	bed, err := s.beds.BookBed(ctx, bedID, patient)
	if err != nil {
		s.logger.Info("booking rejected",
			zap.String("bed_id", bedID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("bed booked",
		zap.String("bed_id", bed.BedID),
		zap.String("ward_id", bed.WardID))
	return bed, nil
}

// SetStatus applies an administrative status change. The raw status string is
// validated here so unrecognized values never reach the store.
func (s *LedgerService) SetStatus(ctx context.Context, bedID string, rawStatus string) (*domain.Bed, error) {
	if bedID == "" {
		return nil, domain.ErrBedNotFound
	}
	status, err := domain.ParseBedStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	bed, err := s.beds.UpdateStatus(ctx, bedID, status)
	if err != nil {
		s.logger.Info("status change rejected",
			zap.String("bed_id", bedID),
			zap.String("status", rawStatus),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("bed status changed",
		zap.String("bed_id", bed.BedID),
		zap.String("status", bed.Status.String()))
	return bed, nil
}

// List returns the current bed snapshot, optionally filtered by ward and/or
// status. rawStatus "" means no status filter.
func (s *LedgerService) List(ctx context.Context, wardID string, rawStatus string) ([]*domain.Bed, error) {
	filter := repository.ListFilter{WardID: wardID}
	if rawStatus != "" {
		status, err := domain.ParseBedStatus(rawStatus)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	return s.beds.ListBeds(ctx, filter)
}

// Bed returns one bed by id.
func (s *LedgerService) Bed(ctx context.Context, bedID string) (*domain.Bed, error) {
	if bedID == "" {
		return nil, domain.ErrBedNotFound
	}
	return s.beds.GetBed(ctx, bedID)
}

// Snapshot is the unfiltered listing used by the notification publisher.
func (s *LedgerService) Snapshot(ctx context.Context) ([]*domain.Bed, error) {
	return s.beds.ListBeds(ctx, repository.ListFilter{})
}

// ListWards returns the ward structure.
func (s *LedgerService) ListWards(ctx context.Context) ([]*domain.Ward, error) {
	return s.wards.ListWards(ctx)
}

// Metrics derives aggregate counts from one snapshot read. Occupancy rate is
// 0 for an empty hospital.
func (s *LedgerService) Metrics(ctx context.Context) (*domain.BedMetrics, error) {
	wards, err := s.wards.ListWards(ctx)
	if err != nil {
		return nil, err
	}
	beds, err := s.beds.ListBeds(ctx, repository.ListFilter{})
	if err != nil {
		return nil, err
	}

	m := &domain.BedMetrics{}
	perWard := make(map[string]*domain.WardMetrics, len(wards))
	for _, w := range wards {
		wm := &domain.WardMetrics{WardID: w.WardID, WardName: w.WardName}
		perWard[w.WardID] = wm
	}

	for _, bed := range beds {
		m.Total++
		wm := perWard[bed.WardID]
		if wm != nil {
			wm.Total++
		}
		switch bed.Status {
		case domain.StatusAvailable:
			m.Available++
			if wm != nil {
				wm.Available++
			}
		case domain.StatusOccupied:
			m.Occupied++
			if wm != nil {
				wm.Occupied++
			}
		case domain.StatusMaintenance:
			m.Maintenance++
			if wm != nil {
				wm.Maintenance++
			}
		}
	}
	if m.Total > 0 {
		m.OccupancyRate = float64(m.Occupied) / float64(m.Total)
	}

	for _, w := range wards {
		m.Wards = append(m.Wards, *perWard[w.WardID])
	}
	return m, nil
}
