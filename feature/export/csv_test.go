package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"stockcount/core/storage/mocks"
	"stockcount/feature/inventory"
)

func sampleTable(t *testing.T) Table {
	t.Helper()
	generatedAt, err := time.Parse("2006-01-02 15:04", "2026-08-31 14:30")
	require.NoError(t, err)
	table := BuildTable(sampleRecords(), Config{BranchName: "สาขา 12", CountedBy: "สมชาย"}, generatedAt)
	return table
}

func TestWriteCSV(t *testing.T) {
	data, err := WriteCSV(sampleTable(t), ',')
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(data, utf8BOM), "Excel needs the BOM to read Thai text")

	r := csv.NewReader(bytes.NewReader(data[len(utf8BOM):]))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, "รายงานนับสต๊อกสินค้า", rows[0][0])
	assert.Equal(t, []string{"วันที่", "31/08/2026 14:30"}, rows[1])
	assert.Equal(t, []string{"สาขา", "สาขา 12"}, rows[2])
	assert.Equal(t, []string{"ผู้นับ", "สมชาย"}, rows[3])

	header := rows[5]
	assert.Equal(t, csvColumns, header)

	first := rows[6]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "100001", first[1])
	assert.Equal(t, "น้ำดื่ม 600ml", first[2])
	assert.Equal(t, "น้ำดื่มขวด 600 มล.", first[3])
	assert.Equal(t, "Water", first[4])
	assert.Equal(t, "Crystal", first[5])
	assert.Equal(t, "5", first[7])
	assert.Equal(t, "5", first[8])
	assert.Equal(t, "10", first[9])

	totals := rows[len(rows)-1]
	assert.Equal(t, "รวมทั้งหมด", totals[6])
	assert.Equal(t, "22", totals[9])
}

func TestWriteCSV_CustomDelimiter(t *testing.T) {
	data, err := WriteCSV(sampleTable(t), ';')
	require.NoError(t, err)
	assert.Contains(t, string(data), "100001;น้ำดื่ม 600ml")
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(sampleTable(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	assert.Equal(t, "รายงานนับสต๊อกสินค้า", rows[0][0])
	assert.Equal(t, "รหัสสินค้า", rows[5][1])
	assert.Equal(t, "รายละเอียด", rows[5][3])
	assert.Equal(t, "100001", rows[6][1])
	assert.Equal(t, "น้ำดื่มขวด 600 มล.", rows[6][3])
	assert.Equal(t, "10", rows[6][9])
}

func TestService_Generate(t *testing.T) {
	store := inventory.NewStore(nil, zap.NewNop())
	svc := NewService(store, nil, "stockcount-exports", Config{}, zap.NewNop())

	artifact, err := svc.Generate(FormatCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(artifact.Filename, ".csv"))
	assert.Contains(t, artifact.ContentType, "text/csv")

	artifact, err = svc.Generate(FormatXLSX)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(artifact.Filename, ".xlsx"))

	_, err = svc.Generate(Format("pdf"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestService_Upload(t *testing.T) {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "stockcount-exports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "stockcount-exports", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "stockcount-exports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	store := inventory.NewStore(nil, zap.NewNop())
	svc := NewService(store, client, "stockcount-exports", Config{}, zap.NewNop())

	artifact, err := svc.Generate(FormatCSV)
	require.NoError(t, err)

	objectName, err := svc.Upload(context.Background(), artifact)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(objectName, "exports/"))
	assert.True(t, strings.HasSuffix(objectName, artifact.Filename))
	client.AssertExpectations(t)
}

func TestService_UploadDisabledWithoutClient(t *testing.T) {
	store := inventory.NewStore(nil, zap.NewNop())
	svc := NewService(store, nil, "stockcount-exports", Config{}, zap.NewNop())

	artifact, err := svc.Generate(FormatCSV)
	require.NoError(t, err)

	_, err = svc.Upload(context.Background(), artifact)
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}
