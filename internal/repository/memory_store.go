package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"bedboard/internal/domain"

	"github.com/google/uuid"
)

// MemoryStore backs both BedsRepo and WardsRepo for DB-less development and
// unit tests. Same semantics as the Postgres repos: every mutation happens
// under one lock acquisition, so BookBed keeps its compare-and-set contract.
type MemoryStore struct {
	mu    sync.RWMutex
	wards map[string]*domain.Ward // wardID -> ward
	beds  map[string]*domain.Bed  // bedID -> bed
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		wards: map[string]*domain.Ward{},
		beds:  map[string]*domain.Bed{},
	}
}

// cloneBed keeps callers from aliasing the stored record.
func cloneBed(b *domain.Bed) *domain.Bed {
	out := *b
	if b.Patient != nil {
		p := *b.Patient
		out.Patient = &p
	}
	return &out
}

// ---- BedsRepo ----

func (s *MemoryStore) GetBed(_ context.Context, bedID string) (*domain.Bed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bed, ok := s.beds[bedID]
	if !ok {
		return nil, domain.ErrBedNotFound
	}
	return cloneBed(bed), nil
}

func (s *MemoryStore) ListBeds(_ context.Context, filter ListFilter) ([]*domain.Bed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.Bed{}
	for _, bed := range s.beds {
		if filter.WardID != "" && bed.WardID != filter.WardID {
			continue
		}
		if filter.Status != "" && bed.Status != filter.Status {
			continue
		}
		out = append(out, cloneBed(bed))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WardID != out[j].WardID {
			return out[i].WardID < out[j].WardID
		}
		return out[i].BedNumber < out[j].BedNumber
	})
	return out, nil
}

func (s *MemoryStore) BookBed(_ context.Context, bedID string, patient *domain.Patient) (*domain.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bed, ok := s.beds[bedID]
	if !ok {
		return nil, domain.ErrBedNotFound
	}
	if bed.Status != domain.StatusAvailable {
		return nil, domain.ErrBedUnavailable
	}

	p := *patient
	bed.Status = domain.StatusOccupied
	bed.Patient = &p
	bed.LastUpdated = time.Now()
	return cloneBed(bed), nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, bedID string, status domain.BedStatus) (*domain.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bed, ok := s.beds[bedID]
	if !ok {
		return nil, domain.ErrBedNotFound
	}
	if status == domain.StatusOccupied && bed.Status != domain.StatusOccupied {
		// The only way into occupied is BookBed.
		return nil, domain.ErrInvalidStatus
	}

	bed.Status = status
	if status != domain.StatusOccupied {
		bed.Patient = nil
	}
	bed.LastUpdated = time.Now()
	return cloneBed(bed), nil
}

// ---- WardsRepo ----

func (s *MemoryStore) ListWards(_ context.Context) ([]*domain.Ward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.Ward{}
	for _, w := range s.wards {
		ward := *w
		out = append(out, &ward)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WardName < out[j].WardName })
	return out, nil
}

func (s *MemoryStore) GetWard(_ context.Context, wardID string) (*domain.Ward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wards[wardID]
	if !ok {
		return nil, domain.ErrWardNotFound
	}
	ward := *w
	return &ward, nil
}

func (s *MemoryStore) CreateWard(_ context.Context, ward *domain.Ward) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := *ward
	if w.WardID == "" {
		w.WardID = uuid.NewString()
	}
	if _, exists := s.wards[w.WardID]; exists {
		return nil
	}
	s.wards[w.WardID] = &w
	return nil
}

func (s *MemoryStore) CreateBed(_ context.Context, bed *domain.Bed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := cloneBed(bed)
	if b.BedID == "" {
		b.BedID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = domain.StatusAvailable
	}
	if b.LastUpdated.IsZero() {
		b.LastUpdated = time.Now()
	}
	if _, exists := s.beds[b.BedID]; exists {
		return nil
	}
	s.beds[b.BedID] = b
	return nil
}
