package xlsxreport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriterProducesReadableWorkbook(t *testing.T) {
	w := NewWriter("Bookings")
	defer w.Close()

	require.NoError(t, w.WriteHeader([]string{"ID", "Status"}))
	require.NoError(t, w.WriteRow([]interface{}{int64(1), "pending"}))
	require.NoError(t, w.WriteRow([]interface{}{int64(2), "confirmed"}))

	var buf bytes.Buffer
	require.NoError(t, w.WriteTo(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"ID", "Status"}, rows[0])
	assert.Equal(t, []string{"1", "pending"}, rows[1])
	assert.Equal(t, []string{"2", "confirmed"}, rows[2])
}

func TestNewWriterTruncatesLongSheetName(t *testing.T) {
	name := strings.Repeat("a", 40)
	w := NewWriter(name)
	defer w.Close()

	assert.Equal(t, 31, len(w.sheet))
}

func TestWriteRowMixedTypes(t *testing.T) {
	w := NewWriter("Report")
	defer w.Close()

	require.NoError(t, w.WriteRow([]interface{}{int64(7), "текст", 3.5, true}))

	var buf bytes.Buffer
	require.NoError(t, w.WriteTo(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	val, err := f.GetCellValue("Report", "B1")
	require.NoError(t, err)
	assert.Equal(t, "текст", val)
}
