package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"registration-module/models"

	"github.com/xuri/excelize/v2"
)

// RegistrationsCSV renders registrations as CSV: one header row plus one row
// per registration, columns per models.ExportColumns.
func RegistrationsCSV(regs []models.Registration) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(models.ExportColumns); err != nil {
		return nil, fmt.Errorf("error writing CSV header: %w", err)
	}
	for i := range regs {
		if err := w.Write(regs[i].ExportRow()); err != nil {
			return nil, fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// RegistrationsXLSX renders the same export as a single-sheet spreadsheet.
func RegistrationsXLSX(regs []models.Registration) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for col, header := range models.ExportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("error resolving header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("error writing header cell: %w", err)
		}
	}

	for i := range regs {
		for col, value := range regs[i].ExportRow() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("error resolving cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("error writing cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
