package render

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jirareport/worklog-report/internal/model"
)

func renderAndOpen(t *testing.T, rows []model.ReportRow) *excelize.File {
	t.Helper()

	var buf bytes.Buffer
	if err := Render(rows, &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func testRow(date, hours string) model.ReportRow {
	return model.ReportRow{
		Date:        date,
		Assignee:    "Dana",
		ProjectName: "Operations",
		ProjectID:   "OPS",
		IssueID:     "OPS-1",
		UpdatedBy:   "Dana",
		Issue:       "Rotate certificates",
		Comment:     model.NoComment,
		Hours:       hours,
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start, end string
		want       string
	}{
		{"2024-01-01", "2024-01-31", "Worklog_Report_2024-01-01_to_2024-01-31.xlsx"},
		{"2024-01-01T00:00:00Z", "2024-01-31", "Worklog_Report_2024-01-01T00-00-00Z_to_2024-01-31.xlsx"},
		{"../etc", "x", "Worklog_Report_..-etc_to_x.xlsx"},
	}

	for _, tt := range tests {
		if got := FileName(tt.start, tt.end); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestArchiveName_Unique(t *testing.T) {
	t.Parallel()

	a := ArchiveName("2024-01-01", "2024-01-31", "01HQ0000000000000000000001")
	b := ArchiveName("2024-01-01", "2024-01-31", "01HQ0000000000000000000002")
	if a == b {
		t.Errorf("archive names should differ per id, both %q", a)
	}
}

func TestRender_SingleNamedSheet(t *testing.T) {
	t.Parallel()

	f := renderAndOpen(t, []model.ReportRow{testRow("2024-01-15", "1.00")})

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != SheetName {
		t.Errorf("sheets = %v, want [%s]", sheets, SheetName)
	}
}

func TestRender_HeaderAndRows(t *testing.T) {
	t.Parallel()

	rows := []model.ReportRow{
		testRow("2024-01-15", "1.00"),
		testRow("2024-01-16", "2.50"),
	}
	f := renderAndOpen(t, rows)

	got, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(got))
	}

	for i, col := range model.Columns {
		if got[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, got[0][i], col)
		}
	}
	if got[1][0] != "2024-01-15" || got[1][8] != "1.00" {
		t.Errorf("row 1 = %v", got[1])
	}
	if got[2][8] != "2.50" {
		t.Errorf("row 2 hours = %q, want 2.50", got[2][8])
	}
}

func TestRender_HoursStoredAsText(t *testing.T) {
	t.Parallel()

	f := renderAndOpen(t, []model.ReportRow{testRow("2024-01-15", "1.00")})

	typ, err := f.GetCellType(SheetName, "I2")
	if err != nil {
		t.Fatalf("GetCellType failed: %v", err)
	}
	if typ == excelize.CellTypeNumber {
		t.Error("Hours should be a text cell, got number")
	}
}

func TestRender_Styles(t *testing.T) {
	t.Parallel()

	rows := []model.ReportRow{
		testRow("2024-01-15", "1.00"),
		testRow("2024-01-16", "1.00"),
		testRow("2024-01-17", "1.00"),
	}
	f := renderAndOpen(t, rows)

	style := func(cell string) int {
		id, err := f.GetCellStyle(SheetName, cell)
		if err != nil {
			t.Fatalf("GetCellStyle(%s) failed: %v", cell, err)
		}
		return id
	}

	header, even, odd, even2 := style("A1"), style("A2"), style("A3"), style("A4")
	if header == even || header == odd {
		t.Error("header style should differ from data row styles")
	}
	if even == odd {
		t.Error("alternating rows should use different fills")
	}
	if even != even2 {
		t.Error("rows with the same parity should share a style")
	}
	if style("I1") != header {
		t.Error("every header cell should carry the header style")
	}
}

func TestRender_EmptyRowsStillHasHeader(t *testing.T) {
	t.Parallel()

	f := renderAndOpen(t, nil)

	got, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(rows) = %d, want header only", len(got))
	}
	if len(got[0]) != len(model.Columns) {
		t.Errorf("header has %d cells, want %d", len(got[0]), len(model.Columns))
	}
}
