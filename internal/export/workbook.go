// Package export writes list views to XLSX workbooks.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of an XLSX workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

// Sheet is one worksheet: a bold header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Write renders sheets, in order, as a workbook into w.
func Write(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return errors.New("export: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sh.Name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", sh.Name, err)
		}
		if err := writeSheet(f, sh, bold); err != nil {
			return fmt.Errorf("sheet %q: %w", sh.Name, err)
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSheet(f *excelize.File, sh Sheet, headerStyle int) error {
	header := sh.Header
	if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
		return err
	}
	for i := range sh.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := sh.Rows[i]
		if err := f.SetSheetRow(sh.Name, cell, &row); err != nil {
			return err
		}
	}

	if len(sh.Header) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(sh.Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.Name, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(sh.Header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sh.Name, "A", lastCol, 22); err != nil {
		return err
	}
	return f.SetPanes(sh.Name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}
