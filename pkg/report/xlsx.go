// Package report renders connection test history as spreadsheets.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
)

const (
	RunsSheet        = "Runs"
	DiagnosticsSheet = "Diagnostics"

	timeLayout = time.RFC3339
)

var (
	runsHeader        = []any{"ID", "Status", "Started", "Completed", "Duration (ms)", "Lines"}
	diagnosticsHeader = []any{"Run ID", "Line", "Kind", "Message"}
)

// WriteXLSX writes runs as a workbook with one sheet of runs and one sheet
// holding every diagnostic line.
func WriteXLSX(w io.Writer, runs []models.TestRun) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", RunsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(DiagnosticsSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeHeader(f, RunsSheet, runsHeader, bold); err != nil {
		return err
	}
	if err := writeHeader(f, DiagnosticsSheet, diagnosticsHeader, bold); err != nil {
		return err
	}

	line := 2
	for i, run := range runs {
		row := []any{
			run.ID.String(),
			string(run.Status),
			formatTime(run.StartedAt),
			formatTime(run.CompletedAt),
			duration(run),
			len(run.Diagnostics),
		}
		if err := setRow(f, RunsSheet, i+2, row); err != nil {
			return err
		}

		for j, d := range run.Diagnostics {
			if err := setRow(f, DiagnosticsSheet, line, []any{run.ID.String(), j + 1, string(d.Kind), d.Message}); err != nil {
				return err
			}
			line++
		}
	}

	if err := f.SetColWidth(RunsSheet, "A", "A", 38); err != nil {
		return err
	}
	if err := f.SetColWidth(RunsSheet, "C", "D", 26); err != nil {
		return err
	}
	if err := f.SetColWidth(DiagnosticsSheet, "A", "A", 38); err != nil {
		return err
	}
	if err := f.SetColWidth(DiagnosticsSheet, "D", "D", 80); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []any, style int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func duration(run models.TestRun) int64 {
	if run.CompletedAt.IsZero() || run.StartedAt.IsZero() {
		return 0
	}
	return run.CompletedAt.Sub(run.StartedAt).Milliseconds()
}
