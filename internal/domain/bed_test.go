package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBedStatus(t *testing.T) {
	cases := []struct {
		in   string
		want BedStatus
		ok   bool
	}{
		{"available", StatusAvailable, true},
		{"Available", StatusAvailable, true},
		{"OCCUPIED", StatusOccupied, true},
		{" maintenance ", StatusMaintenance, true},
		{"Under Maintenance", StatusMaintenance, true},
		{"Orbiting", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseBedStatus(tc.in)
		if tc.ok {
			assert.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got, tc.in)
		} else {
			assert.ErrorIs(t, err, ErrInvalidStatus, tc.in)
		}
	}
}

func TestPatientValidate(t *testing.T) {
	valid := &Patient{Name: "Alice", Age: 30, Contact: "555", MedicalReason: "flu"}
	assert.NoError(t, valid.Validate())

	var nilPatient *Patient
	assert.ErrorIs(t, nilPatient.Validate(), ErrInvalidPatient)

	cases := []Patient{
		{Name: " ", Age: 30, Contact: "555", MedicalReason: "flu"},
		{Name: "Alice", Age: -1, Contact: "555", MedicalReason: "flu"},
		{Name: "Alice", Age: 30, Contact: "", MedicalReason: "flu"},
		{Name: "Alice", Age: 30, Contact: "555", MedicalReason: ""},
	}
	for _, p := range cases {
		p := p
		assert.ErrorIs(t, p.Validate(), ErrInvalidPatient)
	}
}
