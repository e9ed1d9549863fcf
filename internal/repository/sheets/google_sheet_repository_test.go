package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

func TestSnapshotRow(t *testing.T) {
	at := time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC)
	row := SnapshotRow(models.ReportSnapshot{
		GeneratedAt:    at,
		TotalItems:     9,
		TotalStock:     319,
		InventoryValue: 1234.5,
		LowStockCount:  3,
		Transfers:      2,
		OpenOrders:     2,
	})

	assert.Len(t, row, 11)
	assert.Equal(t, "2024-03-14T20:00:00Z", row[0])
	assert.Equal(t, 9, row[1])
	assert.Equal(t, 1234.5, row[3])
	assert.Equal(t, 2, row[10])
}
