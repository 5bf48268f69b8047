package domain

import (
	"strings"
	"time"
)

// BedStatus is the closed set of bed states. Values are stored lowercase;
// ParseBedStatus rejects anything outside the set so free-form strings never
// reach the store.
type BedStatus string

const (
	StatusAvailable   BedStatus = "available"
	StatusOccupied    BedStatus = "occupied"
	StatusMaintenance BedStatus = "maintenance"
)

// ParseBedStatus normalizes a client-supplied status string.
// "Under Maintenance" is accepted as a legacy alias for maintenance.
func ParseBedStatus(s string) (BedStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available":
		return StatusAvailable, nil
	case "occupied":
		return StatusOccupied, nil
	case "maintenance", "under maintenance":
		return StatusMaintenance, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s BedStatus) String() string {
	return string(s)
}

// Patient is the record attached to an occupied bed.
// All four fields are required when booking.
type Patient struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Contact       string `json:"contact"`
	MedicalReason string `json:"medical_reason"`
}

// Validate checks that every booking field is present.
func (p *Patient) Validate() error {
	if p == nil {
		return ErrInvalidPatient
	}
	if strings.TrimSpace(p.Name) == "" ||
		p.Age <= 0 ||
		strings.TrimSpace(p.Contact) == "" ||
		strings.TrimSpace(p.MedicalReason) == "" {
		return ErrInvalidPatient
	}
	return nil
}

// Bed domain model (beds table).
// Invariant: Patient != nil exactly when Status == occupied.
type Bed struct {
	BedID       string    `db:"bed_id" json:"bed_id"`
	WardID      string    `db:"ward_id" json:"ward_id"`
	BedNumber   string    `db:"bed_number" json:"bed_number"`
	Status      BedStatus `db:"status" json:"status"`
	Patient     *Patient  `db:"patient" json:"patient,omitempty"`
	LastUpdated time.Time `db:"last_updated" json:"last_updated"`
}
