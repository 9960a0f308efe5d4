package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVWriter().Write(&buf, WriteOptions{
		Headers: []string{"SKU", "Qty"},
		Records: [][]string{{"A", "10"}, {"B", "30"}},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "SKU,Qty", lines[0])
	assert.Equal(t, "A,10", lines[1])
	assert.Equal(t, "B,30", lines[2])
}

func TestCSVWriter_BOMPrefix(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVWriter().Write(&buf, WriteOptions{
		Headers:   []string{"SKU"},
		BOMPrefix: true,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestTableOptions(t *testing.T) {
	table := domain.Table{
		Columns: []string{"SKU", "Qty", "Note"},
		Rows: []domain.Row{
			{"A", 20.0, nil},
			{"B", 12.5}, // ragged
		},
	}

	opts := TableOptions(table, false)

	assert.Equal(t, []string{"SKU", "Qty", "Note"}, opts.Headers)
	require.Len(t, opts.Records, 2)
	assert.Equal(t, []string{"A", "20", ""}, opts.Records[0])
	assert.Equal(t, []string{"B", "12.5", ""}, opts.Records[1])
}

func TestFocusSummaryOptions(t *testing.T) {
	summary := domain.Summary{
		FocusCount: 1,
		FocusSKUs: []domain.FocusSKU{
			{SKU: "A", TotalQuantity: 300, Velocity: 13.4},
		},
	}

	opts := FocusSummaryOptions(summary)

	assert.Equal(t, []string{"SKU", "TotalQuantityValues", "Velocity"}, opts.Headers)
	require.Len(t, opts.Records, 1)
	assert.Equal(t, []string{"A", "300.00", "13.40"}, opts.Records[0])
}
