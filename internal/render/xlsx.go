// Package render writes worklog report rows to an XLSX workbook.
package render

import (
	"fmt"
	"io"
	"regexp"

	"github.com/xuri/excelize/v2"

	"github.com/jirareport/worklog-report/internal/model"
)

// Workbook layout constants.
const (
	SheetName   = "Worklog Report"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	HeaderFill  = "#FFA500"
	EvenRowFill = "#FFFFFF"
	OddRowFill  = "#D3D3D3"

	columnWidth = 18
)

// unsafeFileChars matches anything that should not appear in a file name.
var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._+-]`)

// FileName returns the download name for a report over [start, end].
func FileName(start, end string) string {
	return fmt.Sprintf("Worklog_Report_%s_to_%s.xlsx", safe(start), safe(end))
}

// ArchiveName returns a unique on-disk name for a report copy.
func ArchiveName(start, end, id string) string {
	return fmt.Sprintf("Worklog_Report_%s_to_%s_%s.xlsx", safe(start), safe(end), safe(id))
}

func safe(s string) string {
	return unsafeFileChars.ReplaceAllString(s, "-")
}

// Render writes a single-sheet workbook holding rows to w.
// The header row is always written, so zero rows yield a valid empty report.
func Render(rows []model.ReportRow, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(model.Columns))
	if err != nil {
		return fmt.Errorf("resolve last column: %w", err)
	}

	header := make([]any, len(model.Columns))
	for i, c := range model.Columns {
		header[i] = c
	}
	if err := writeRow(f, 1, header, lastCol, styles.header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		style := styles.even
		if i%2 == 1 {
			style = styles.odd
		}

		values := row.Values()
		cells := make([]any, len(values))
		for j, v := range values {
			cells[j] = v
		}

		if err := writeRow(f, i+2, cells, lastCol, style); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", lastCol, columnWidth); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type styleSet struct {
	header int
	even   int
	odd    int
}

func newStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: solidFill(HeaderFill),
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	s.even, err = f.NewStyle(&excelize.Style{Fill: solidFill(EvenRowFill)})
	if err != nil {
		return s, fmt.Errorf("create even row style: %w", err)
	}

	s.odd, err = f.NewStyle(&excelize.Style{Fill: solidFill(OddRowFill)})
	if err != nil {
		return s, fmt.Errorf("create odd row style: %w", err)
	}

	return s, nil
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func writeRow(f *excelize.File, rowNum int, cells []any, lastCol string, style int) error {
	first, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, first, &cells); err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, first, fmt.Sprintf("%s%d", lastCol, rowNum), style)
}
