package repository

import (
	"context"
	"fmt"

	"bedboard/internal/domain"
)

// seedWard describes one ward's worth of seed beds.
type seedWard struct {
	id     string
	name   string
	prefix string // bed id prefix
	label  string // bed number label prefix
	count  int
}

// Default hospital layout: wards and beds exist from initialization on and
// are never created through the API.
var defaultLayout = []seedWard{
	{id: "ward_1", name: "General Ward", prefix: "gen", label: "G", count: 12},
	{id: "ward_2", name: "ICU", prefix: "icu", label: "ICU", count: 6},
	{id: "ward_3", name: "Special Care", prefix: "spec", label: "S", count: 8},
}

// SeedDefaultLayout creates the default wards and beds when the store is
// empty. Idempotent: any existing ward short-circuits the whole seed.
func SeedDefaultLayout(ctx context.Context, wards WardsRepo) (bool, error) {
	existing, err := wards.ListWards(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	for _, sw := range defaultLayout {
		if err := wards.CreateWard(ctx, &domain.Ward{WardID: sw.id, WardName: sw.name}); err != nil {
			return false, err
		}
		for i := 1; i <= sw.count; i++ {
			bed := &domain.Bed{
				BedID:     fmt.Sprintf("%s_%d", sw.prefix, i),
				WardID:    sw.id,
				BedNumber: fmt.Sprintf("%s%d", sw.label, i),
				Status:    domain.StatusAvailable,
			}
			if err := wards.CreateBed(ctx, bed); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}
