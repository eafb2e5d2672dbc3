package reports

import (
	"bytes"
	"testing"
	"time"
)

var sampleExport = Export{
	KPIs: []KPI{
		{Metric: "Team Productivity", Value: "87%"},
		{Metric: "Reviews Completed", Value: "14"},
	},
	Leaderboard: []LeaderboardEntry{
		{Name: "Ava Chen", RankLabel: "Gold"},
		{Name: "Noah Reed", RankLabel: "Silver"},
	},
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(sampleExport, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", data[:min(8, len(data))])
	}
}

func TestRenderPDFEmptySnapshot(t *testing.T) {
	data, err := RenderPDF(Export{}, time.Now())
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF")
	}
}

func TestRenderXLSX(t *testing.T) {
	data, err := RenderXLSX(sampleExport, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("render xlsx: %v", err)
	}
	// XLSX is a zip archive.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("expected zip header, got %q", data[:min(4, len(data))])
	}
}

func TestRenderXLSXEmptySnapshot(t *testing.T) {
	data, err := RenderXLSX(Export{}, time.Now())
	if err != nil {
		t.Fatalf("render xlsx: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty workbook")
	}
}
