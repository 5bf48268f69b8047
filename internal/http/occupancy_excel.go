package httpapi

import (
	"fmt"

	"bedboard/internal/domain"

	"github.com/xuri/excelize/v2"
)

// OccupancyExportHeader is the bed sheet header of the occupancy report.
var OccupancyExportHeader = []string{
	"Ward",
	"Bed Number",
	"Status",
	"Patient Name",
	"Patient Age",
	"Contact",
	"Medical Reason",
	"Last Updated",
}

// GenerateOccupancyReport renders the current snapshot as an .xlsx file with
// a per-bed sheet and a per-ward summary sheet.
func GenerateOccupancyReport(beds []*domain.Bed, metrics *domain.BedMetrics) ([]byte, error) {
	f := excelize.NewFile()
	// Note: no deferred Close here, WriteToBuffer needs the file open

	sheetName := "Beds"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	wardNames := map[string]string{}
	if metrics != nil {
		for _, wm := range metrics.Wards {
			wardNames[wm.WardID] = wm.WardName
		}
	}

	if err := writeHeaderRow(f, sheetName, OccupancyExportHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	for i, bed := range beds {
		row := i + 2
		wardName := wardNames[bed.WardID]
		if wardName == "" {
			wardName = bed.WardID
		}
		values := []any{
			wardName,
			bed.BedNumber,
			bed.Status.String(),
			"", "", "", "",
			bed.LastUpdated.Format("2006-01-02 15:04:05"),
		}
		if bed.Patient != nil {
			values[3] = bed.Patient.Name
			values[4] = bed.Patient.Age
			values[5] = bed.Patient.Contact
			values[6] = bed.Patient.MedicalReason
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if metrics != nil {
		if err := writeSummarySheet(f, metrics, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, metrics *domain.BedMetrics, headerStyle int) error {
	sheet := "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headers := []string{"Ward", "Total", "Available", "Occupied", "Maintenance"}
	if err := writeHeaderRow(f, sheet, headers, headerStyle); err != nil {
		return err
	}

	row := 2
	for _, wm := range metrics.Wards {
		values := []any{wm.WardName, wm.Total, wm.Available, wm.Occupied, wm.Maintenance}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to set summary cell %s: %w", cell, err)
			}
		}
		row++
	}

	totals := []any{"All wards", metrics.Total, metrics.Available, metrics.Occupied, metrics.Maintenance}
	for col, v := range totals {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set totals cell %s: %w", cell, err)
		}
	}
	rateCell, err := excelize.CoordinatesToCellName(1, row+2)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	rate := fmt.Sprintf("Occupancy rate: %.1f%%", metrics.OccupancyRate*100)
	if err := f.SetCellValue(sheet, rateCell, rate); err != nil {
		return fmt.Errorf("failed to set occupancy rate cell: %w", err)
	}
	return nil
}
