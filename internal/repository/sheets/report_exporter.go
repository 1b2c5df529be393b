package sheets

import (
	"context"
	"fmt"
	"slices"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

var reportHeader = []any{
	"Date", "Orders", "Partial", "Milk (L)", "Wool (skins)",
	"Milk revenue", "Wool revenue", "Revenue", "Milk stock", "Wool stock",
}

// ReportExporter appends one row per daily revenue report. Dates that already
// have a row are skipped.
type ReportExporter struct {
	sheet      Sheet
	sheetRange string
}

// NewReportExporter writes into RevenueRange of sheet.
func NewReportExporter(sheet Sheet) *ReportExporter {
	return &ReportExporter{sheet: sheet, sheetRange: RevenueRange}
}

// AppendDailyReport writes report unless its date is already present. An
// empty sheet gets a header row first.
func (e *ReportExporter) AppendDailyReport(ctx context.Context, report models.DailyRevenueReport) error {
	dates, err := e.sheet.Column(ctx, e.sheetRange)
	if err != nil {
		return fmt.Errorf("load revenue sheet: %w", err)
	}

	if slices.Contains(dates, report.Date) {
		return nil
	}

	if len(dates) == 0 {
		if err := e.sheet.AppendRow(ctx, e.sheetRange, reportHeader); err != nil {
			return fmt.Errorf("write revenue header: %w", err)
		}
	}

	if err := e.sheet.AppendRow(ctx, e.sheetRange, reportRow(report)); err != nil {
		return fmt.Errorf("write revenue row %s: %w", report.Date, err)
	}
	return nil
}

func reportRow(report models.DailyRevenueReport) []any {
	return []any{
		report.Date,
		report.Orders,
		report.Partial,
		report.MilkGranted,
		report.WoolGranted,
		report.MilkRevenue,
		report.WoolRevenue,
		report.Revenue,
		report.MilkStock,
		report.WoolStock,
	}
}
