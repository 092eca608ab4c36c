package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the table as a spreadsheet with the same layout as
// the CSV report: metadata lines, column header, rows, totals line.
func WriteXLSX(table Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	lines := [][]interface{}{
		{"รายงานนับสต๊อกสินค้า"},
		{"วันที่", table.GeneratedAt.Format("02/01/2006 15:04")},
	}
	if table.BranchName != "" {
		lines = append(lines, []interface{}{"สาขา", table.BranchName})
	}
	if table.CountedBy != "" {
		lines = append(lines, []interface{}{"ผู้นับ", table.CountedBy})
	}
	lines = append(lines, []interface{}{})

	header := make([]interface{}, len(csvColumns))
	for i, col := range csvColumns {
		header[i] = col
	}
	lines = append(lines, header)

	for i, row := range table.Rows {
		lines = append(lines, []interface{}{
			i + 1,
			row.MaterialCode,
			row.Name,
			row.Description,
			row.ProductGroup,
			row.Brand,
			row.Category,
			row.CaseQty,
			row.PieceQty,
			row.Total,
		})
	}
	lines = append(lines, []interface{}{
		"", "", "", "", "", "",
		"รวมทั้งหมด",
		table.TotalCase,
		table.TotalPiece,
		table.TotalQuantity,
	})

	for i := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("building report cells: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &lines[i]); err != nil {
			return nil, fmt.Errorf("writing report row: %w", err)
		}
	}

	// Thai product names and descriptions need room.
	if err := f.SetColWidth(sheet, "C", "D", 32); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("writing spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
