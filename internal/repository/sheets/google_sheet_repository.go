package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const snapshotRange = "Reports!A:K"

// GoogleSheetRepository writes report snapshots to a spreadsheet through the
// official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// WriteRows appends the provided rows to the supplied sheet range.
func (r *GoogleSheetRepository) WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}
	if len(rows) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("rows appended to sheet", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return nil
}

// SaveSnapshot appends one report snapshot row to the Reports sheet.
func (r *GoogleSheetRepository) SaveSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error {
	return r.WriteRows(ctx, snapshotRange, [][]interface{}{SnapshotRow(snapshot)})
}

// SnapshotRow lays a snapshot out in the column order of the Reports sheet.
func SnapshotRow(s models.ReportSnapshot) []interface{} {
	return []interface{}{
		s.GeneratedAt.Format(time.RFC3339),
		s.TotalItems,
		s.TotalStock,
		s.InventoryValue,
		s.LowStockCount,
		s.NewStock,
		s.StockOut,
		s.Adjustments,
		s.Transfers,
		s.SalesAmount,
		s.OpenOrders,
	}
}
