package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// RenderPDF lays out the KPI and leaderboard snapshot as an A4 report.
func RenderPDF(export Export, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s", generatedAt.UTC().Format(time.RFC3339)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Key Performance Indicators")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, kpi := range export.KPIs {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s", kpi.Metric, kpi.Value))
		pdf.Ln(6)
	}
	if len(export.KPIs) == 0 {
		pdf.Cell(0, 7, "No KPI data recorded")
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Leaderboard")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for i, entry := range export.Leaderboard {
		pdf.Cell(0, 7, fmt.Sprintf("%d. %s (%s)", i+1, entry.Name, entry.RankLabel))
		pdf.Ln(6)
	}
	if len(export.Leaderboard) == 0 {
		pdf.Cell(0, 7, "No leaderboard data recorded")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderXLSX writes the same snapshot as a two-sheet workbook.
func RenderXLSX(export Export, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const kpiSheet = "KPIs"
	if err := f.SetSheetName("Sheet1", kpiSheet); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, err
	}

	setRow := func(sheet string, row int, values ...any) error {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := setRow(kpiSheet, 1, "Metric", "Value"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(kpiSheet, "A1", "B1", headerStyle); err != nil {
		return nil, err
	}
	for i, kpi := range export.KPIs {
		if err := setRow(kpiSheet, i+2, kpi.Metric, kpi.Value); err != nil {
			return nil, err
		}
	}

	const boardSheet = "Leaderboard"
	if _, err := f.NewSheet(boardSheet); err != nil {
		return nil, err
	}
	if err := setRow(boardSheet, 1, "Rank", "Name", "Label"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(boardSheet, "A1", "C1", headerStyle); err != nil {
		return nil, err
	}
	for i, entry := range export.Leaderboard {
		if err := setRow(boardSheet, i+2, i+1, entry.Name, entry.RankLabel); err != nil {
			return nil, err
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Performance Report",
		Created: generatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
