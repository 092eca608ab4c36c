package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcount/feature/inventory"
)

func sampleRecords() []inventory.Record {
	return []inventory.Record{
		{
			MaterialCode: "200002",
			Name:         "Cola 325ml",
			Description:  "โคล่ากระป๋อง 325 มล.",
			Brand:        "Fizz",
			Category:     "Beverage",
			ProductGroup: "Softdrink",
			Quantities:   inventory.Quantities{EA: 12},
			Quantity:     12,
		},
		{
			MaterialCode: "100001",
			Name:         "น้ำดื่ม 600ml",
			Description:  "น้ำดื่มขวด 600 มล.",
			Brand:        "Crystal",
			Category:     "Beverage",
			ProductGroup: "Water",
			Quantities:   inventory.Quantities{CS: 2, DSP: 3, EA: 5},
			Quantity:     10,
		},
	}
}

func TestBuildTable(t *testing.T) {
	table := BuildTable(sampleRecords(), Config{BranchName: "สาขา 12", CountedBy: "สมชาย"}, time.Now())

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "100001", table.Rows[0].MaterialCode, "rows are sorted by material code")

	water := table.Rows[0]
	assert.Equal(t, "น้ำดื่มขวด 600 มล.", water.Description)
	assert.Equal(t, "Water", water.ProductGroup)
	assert.Equal(t, 5, water.CaseQty, "cs and dsp merge into the case column")
	assert.Equal(t, 5, water.PieceQty)
	assert.Equal(t, 10, water.Total)

	assert.Equal(t, 5, table.TotalCase)
	assert.Equal(t, 17, table.TotalPiece)
	assert.Equal(t, 22, table.TotalQuantity)
	assert.Equal(t, "สาขา 12", table.BranchName)
}

func TestBuildTable_MergesDuplicateMaterialCodes(t *testing.T) {
	records := []inventory.Record{
		{MaterialCode: "100001", Name: "น้ำดื่ม 600ml", Quantities: inventory.Quantities{CS: 1}},
		{MaterialCode: "100001", Name: "น้ำดื่ม 600ml", Quantities: inventory.Quantities{EA: 4}},
	}

	table := BuildTable(records, Config{}, time.Now())
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 1, table.Rows[0].CaseQty)
	assert.Equal(t, 4, table.Rows[0].PieceQty)
	assert.Equal(t, 5, table.Rows[0].Total)
}

func TestBuildTable_SkipsZeroRows(t *testing.T) {
	records := []inventory.Record{
		{MaterialCode: "100001", Name: "น้ำดื่ม 600ml", Quantities: inventory.Quantities{EA: 1}},
		{MaterialCode: "300003", Name: "Zeroed out"},
	}

	table := BuildTable(records, Config{}, time.Now())
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "100001", table.Rows[0].MaterialCode)
}

func TestBuildTable_Empty(t *testing.T) {
	table := BuildTable(nil, Config{}, time.Now())
	assert.Empty(t, table.Rows)
	assert.Zero(t, table.TotalQuantity)
}
