package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/yakshop/internal/config"
)

// RevenueRange is where daily revenue reports are appended.
const RevenueRange = "Revenue!A:J"

// Sheet is the slice of the Sheets API the exporter uses.
type Sheet interface {
	AppendRow(ctx context.Context, sheetRange string, row []any) error
	Column(ctx context.Context, sheetRange string) ([]string, error)
}

// Spreadsheet is a Sheet backed by the Google Sheets API.
type Spreadsheet struct {
	values *sheetsapi.SpreadsheetsValuesService
	id     string
	logger *zap.Logger
}

// NewSpreadsheet authenticates with the service account credentials in cfg.
func NewSpreadsheet(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Spreadsheet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled() {
		return nil, errors.New("spreadsheet id is not configured")
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &Spreadsheet{values: svc.Spreadsheets.Values, id: cfg.SpreadsheetID, logger: logger}, nil
}

// AppendRow adds row below the last filled row of sheetRange.
func (s *Spreadsheet) AppendRow(ctx context.Context, sheetRange string, row []any) error {
	body := &sheetsapi.ValueRange{Values: [][]any{row}}

	_, err := s.values.Append(s.id, sheetRange, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", sheetRange, err)
	}

	s.logger.Debug("row appended", zap.String("range", sheetRange), zap.Any("key", row[0]))
	return nil
}

// Column returns the first column of sheetRange as formatted strings.
func (s *Spreadsheet) Column(ctx context.Context, sheetRange string) ([]string, error) {
	resp, err := s.values.Get(s.id, sheetRange).
		MajorDimension("COLUMNS").
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sheetRange, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	cells := make([]string, 0, len(resp.Values[0]))
	for _, v := range resp.Values[0] {
		cells = append(cells, fmt.Sprint(v))
	}
	return cells, nil
}
