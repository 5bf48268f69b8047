package domain

// Ward domain model (wards table). Wards are created at seed time and are
// not mutated during normal operation.
type Ward struct {
	WardID   string `db:"ward_id" json:"ward_id"`
	WardName string `db:"ward_name" json:"ward_name"`
}

// WardMetrics is one per-ward row of the aggregate view.
type WardMetrics struct {
	WardID      string `json:"ward_id"`
	WardName    string `json:"ward_name"`
	Total       int    `json:"total"`
	Available   int    `json:"available"`
	Occupied    int    `json:"occupied"`
	Maintenance int    `json:"maintenance"`
}

// BedMetrics is the aggregate view over the current bed snapshot.
// Derived on demand, never stored.
type BedMetrics struct {
	Total         int           `json:"total"`
	Available     int           `json:"available"`
	Occupied      int           `json:"occupied"`
	Maintenance   int           `json:"maintenance"`
	OccupancyRate float64       `json:"occupancy_rate"`
	Wards         []WardMetrics `json:"wards"`
}
