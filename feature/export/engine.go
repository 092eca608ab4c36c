package export

import (
	"sort"
	"time"

	"stockcount/feature/inventory"
)

// Row is one report line. Case and display-pack counters merge into the
// case column; each goes to the piece column.
type Row struct {
	MaterialCode string
	Name         string
	Description  string
	ProductGroup string
	Brand        string
	Category     string
	CaseQty      int
	PieceQty     int
	Total        int
}

// Table is a fully computed report, ready for any output format.
type Table struct {
	GeneratedAt time.Time
	BranchName  string
	CountedBy   string
	Rows        []Row

	TotalCase     int
	TotalPiece    int
	TotalQuantity int
}

// BuildTable regroups inventory records into report rows. Snapshots
// written by older sessions can hold duplicate material codes; their
// quantities are summed into one row. Rows whose counters are all zero
// are dropped, and the result is sorted by material code.
func BuildTable(records []inventory.Record, cfg Config, now time.Time) Table {
	byCode := make(map[string]*Row, len(records))
	for i := range records {
		rec := &records[i]
		row, ok := byCode[rec.MaterialCode]
		if !ok {
			row = &Row{
				MaterialCode: rec.MaterialCode,
				Name:         rec.Name,
				Description:  rec.Description,
				ProductGroup: rec.ProductGroup,
				Brand:        rec.Brand,
				Category:     rec.Category,
			}
			byCode[rec.MaterialCode] = row
		}
		row.CaseQty += rec.Quantities.CS + rec.Quantities.DSP
		row.PieceQty += rec.Quantities.EA
	}

	table := Table{
		GeneratedAt: now,
		BranchName:  cfg.BranchName,
		CountedBy:   cfg.CountedBy,
	}
	for _, row := range byCode {
		row.Total = row.CaseQty + row.PieceQty
		if row.Total == 0 {
			continue
		}
		table.Rows = append(table.Rows, *row)
		table.TotalCase += row.CaseQty
		table.TotalPiece += row.PieceQty
		table.TotalQuantity += row.Total
	}

	sort.Slice(table.Rows, func(i, j int) bool {
		return table.Rows[i].MaterialCode < table.Rows[j].MaterialCode
	})
	return table
}
