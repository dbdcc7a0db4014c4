package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/idworks/idscan/internal/llm"
)

// WriteXLSX renders extraction records as an XLSX workbook, one row per
// document.
func WriteXLSX(records []llm.Record, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Extracted IDs"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Filename",
		"ID Type",
		"ID Number",
		"First Name",
		"Last Name",
		"Date of Birth",
		"Place of Birth",
		"Address",
		"State",
		"Country",
		"Class",
		"Sex",
		"Height",
		"Weight",
		"Hair",
		"Eyes",
		"Issue Date",
		"Expiration Date",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, r := range records {
		values := []string{
			r.Filename, r.IDType, r.IDNumber,
			r.FirstName, r.LastName, r.DOB, r.PlaceOfBirth,
			r.Address, r.State, r.Country, r.Class, r.Sex,
			r.Height, r.Weight, r.Hair, r.Eyes,
			r.IssueDate, r.ExpirationDate,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 32) // filename
	_ = f.SetColWidth(sheet, "B", "C", 16) // id type/number
	_ = f.SetColWidth(sheet, "D", "E", 14) // names
	_ = f.SetColWidth(sheet, "H", "H", 40) // address

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("export.xlsx.ok",
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
