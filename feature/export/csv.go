package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// utf8BOM makes Excel detect UTF-8 so Thai text survives a double
// click on Windows.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvColumns = []string{
	"ลำดับ",
	"รหัสสินค้า",
	"ชื่อสินค้า",
	"รายละเอียด",
	"กลุ่มสินค้า",
	"แบรนด์",
	"หมวดหมู่",
	"จำนวน (ลัง)",
	"จำนวน (ชิ้น)",
	"รวม",
}

// WriteCSV renders the table as a BOM-prefixed CSV report with a Thai
// metadata header, one line per row and a trailing totals line.
func WriteCSV(table Table, delimiter rune) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	meta := [][]string{
		{"รายงานนับสต๊อกสินค้า"},
		{"วันที่", table.GeneratedAt.Format("02/01/2006 15:04")},
	}
	if table.BranchName != "" {
		meta = append(meta, []string{"สาขา", table.BranchName})
	}
	if table.CountedBy != "" {
		meta = append(meta, []string{"ผู้นับ", table.CountedBy})
	}
	meta = append(meta, []string{})

	for _, line := range meta {
		if err := w.Write(line); err != nil {
			return nil, fmt.Errorf("writing report header: %w", err)
		}
	}
	if err := w.Write(csvColumns); err != nil {
		return nil, fmt.Errorf("writing column header: %w", err)
	}

	for i, row := range table.Rows {
		record := []string{
			strconv.Itoa(i + 1),
			row.MaterialCode,
			row.Name,
			row.Description,
			row.ProductGroup,
			row.Brand,
			row.Category,
			strconv.Itoa(row.CaseQty),
			strconv.Itoa(row.PieceQty),
			strconv.Itoa(row.Total),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing report row: %w", err)
		}
	}

	totals := []string{
		"", "", "", "", "", "",
		"รวมทั้งหมด",
		strconv.Itoa(table.TotalCase),
		strconv.Itoa(table.TotalPiece),
		strconv.Itoa(table.TotalQuantity),
	}
	if err := w.Write(totals); err != nil {
		return nil, fmt.Errorf("writing totals row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
