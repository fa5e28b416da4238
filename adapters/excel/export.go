package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gomonte/domain/estimate"
)

const historySheet = "Runs"

var historyHeaders = []string{
	"ID", "Sampler", "RTol", "MaxTrials", "BatchSize", "Workers",
	"Seed", "Mean", "StdErr", "Trials", "ElapsedMs", "CreatedAt",
}

// WriteHistory exports run records to an .xlsx workbook, one row per run
func WriteHistory(path string, records []estimate.RunRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(historySheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range historyHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(historySheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %s: %w", header, err)
		}
	}

	for i, record := range records {
		row := i + 2
		values := []interface{}{
			record.ID.String(),
			record.Sampler,
			record.RTol,
			record.MaxTrials,
			record.BatchSize,
			record.Workers,
			record.Seed,
			record.Mean,
			record.StdErr,
			record.Trials,
			record.ElapsedMs,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(historySheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
