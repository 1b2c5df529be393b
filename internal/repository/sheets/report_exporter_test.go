package sheets

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

type fakeSheet struct {
	rows     [][]any
	readErr  error
	writeErr error
}

func (f *fakeSheet) AppendRow(_ context.Context, _ string, row []any) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeSheet) Column(context.Context, string) ([]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []string
	for _, row := range f.rows {
		out = append(out, fmt.Sprint(row[0]))
	}
	return out, nil
}

func TestAppendDailyReportWritesHeaderOnce(t *testing.T) {
	sheet := &fakeSheet{}
	exporter := NewReportExporter(sheet)

	require.NoError(t, exporter.AppendDailyReport(context.Background(), models.DailyRevenueReport{Date: "2025-01-21", Orders: 2, Revenue: 1750}))
	require.NoError(t, exporter.AppendDailyReport(context.Background(), models.DailyRevenueReport{Date: "2025-01-22"}))

	require.Len(t, sheet.rows, 3)
	assert.Equal(t, "Date", sheet.rows[0][0])
	assert.Equal(t, "2025-01-21", sheet.rows[1][0])
	assert.Equal(t, 1750.0, sheet.rows[1][7])
	assert.Len(t, sheet.rows[1], len(reportHeader))
	assert.Equal(t, "2025-01-22", sheet.rows[2][0])
}

func TestAppendDailyReportSkipsExistingDate(t *testing.T) {
	sheet := &fakeSheet{rows: [][]any{reportHeader, {"2025-01-21"}}}
	exporter := NewReportExporter(sheet)

	require.NoError(t, exporter.AppendDailyReport(context.Background(), models.DailyRevenueReport{Date: "2025-01-21"}))
	assert.Len(t, sheet.rows, 2)
}

func TestAppendDailyReportReadFailure(t *testing.T) {
	sheet := &fakeSheet{readErr: errors.New("forbidden")}

	err := NewReportExporter(sheet).AppendDailyReport(context.Background(), models.DailyRevenueReport{Date: "2025-01-21"})
	assert.Error(t, err)
	assert.Empty(t, sheet.rows)
}

func TestAppendDailyReportWriteFailure(t *testing.T) {
	sheet := &fakeSheet{rows: [][]any{reportHeader}, writeErr: errors.New("quota")}

	err := NewReportExporter(sheet).AppendDailyReport(context.Background(), models.DailyRevenueReport{Date: "2025-01-21"})
	assert.ErrorContains(t, err, "2025-01-21")
}
