// Package export renders query results into styled xlsx workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"labtrack/internal/tracking"
)

// MIMEType is the content type for xlsx downloads.
const MIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	recordsSheet = "Lab Records"
	summarySheet = "Summary"
	statusSheet  = "Current Lab Status"

	recordsHeaderFill = "366092"
	statusHeaderFill  = "4CAF50"

	maxColWidth = 50
)

// RecordsFilename names the full-history download for the given moment.
func RecordsFilename(t time.Time) string {
	return fmt.Sprintf("lab_records_export_%s.xlsx", t.Format("20060102_150405"))
}

// StatusFilename names the current-status download for the given moment.
func StatusFilename(t time.Time) string {
	return fmt.Sprintf("current_lab_status_%s.xlsx", t.Format("20060102_150405"))
}

// Records builds the full-history workbook: a "Lab Records" sheet mirroring
// the rows plus a "Summary" sheet with aggregate metrics.
func Records(rows []tracking.ExportRow, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return nil, fmt.Errorf("name records sheet: %w", err)
	}

	headers := []string{"person_id", "name", "email", "phone", "department", "lab_name", "entry_time", "exit_time", "status"}
	cells := make([][]any, 0, len(rows))
	inLab := 0
	persons := map[int64]struct{}{}
	for _, r := range rows {
		cells = append(cells, []any{
			r.PersonID, r.Name, r.Email, deref(r.Phone), deref(r.Department),
			r.LabName, r.EntryTime, deref(r.ExitTime), r.Status,
		})
		if r.Status == "IN LAB" {
			inLab++
		}
		persons[r.PersonID] = struct{}{}
	}
	if err := writeSheet(f, recordsSheet, headers, cells, recordsHeaderFill); err != nil {
		return nil, fmt.Errorf("build records sheet: %w", err)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("add summary sheet: %w", err)
	}
	summary := [][]any{
		{"Total Records", len(rows)},
		{"Current Lab Occupants", inLab},
		{"Unique Persons", len(persons)},
		{"Date Generated", generatedAt.Format(tracking.TimeLayout)},
	}
	if err := writeSheet(f, summarySheet, []string{"Metric", "Value"}, summary, recordsHeaderFill); err != nil {
		return nil, fmt.Errorf("build summary sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// CurrentStatus builds the single-sheet snapshot of everyone currently in a
// lab.
func CurrentStatus(rows []tracking.StatusRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", statusSheet); err != nil {
		return nil, fmt.Errorf("name status sheet: %w", err)
	}

	headers := []string{"name", "email", "department", "phone", "lab_name", "entry_time"}
	cells := make([][]any, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []any{
			r.Name, r.Email, deref(r.Department), deref(r.Phone), r.LabName, r.EntryTime,
		})
	}
	if err := writeSheet(f, statusSheet, headers, cells, statusHeaderFill); err != nil {
		return nil, fmt.Errorf("build status sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet fills one sheet with a styled header row, the data rows, and
// content-sized column widths capped at maxColWidth.
func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, fill string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		widths[i] = len(h)
	}

	for ri, row := range rows {
		for ci, v := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			if n := len(fmt.Sprint(v)); n > widths[ci] {
				widths[ci] = n
			}
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, style); err != nil {
		return err
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(w + 2)
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
