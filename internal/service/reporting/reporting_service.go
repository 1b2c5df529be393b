package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

// Granularities accepted by Revenue.
const (
	GranularityDay   = "day"
	GranularityMonth = "month"
)

// ErrUnknownGranularity indicates an unsupported revenue bucket size.
var ErrUnknownGranularity = errors.New("unknown revenue granularity")

// HistorySource returns the order history, oldest first.
type HistorySource interface {
	History(ctx context.Context) ([]models.Order, error)
}

// StockReader returns the current stock snapshot.
type StockReader interface {
	Stock(ctx context.Context) (models.StockSnapshot, error)
}

// ReportStore persists daily revenue reports.
type ReportStore interface {
	SaveDailyReport(ctx context.Context, report models.DailyRevenueReport) error
}

// ReportExporter publishes daily revenue reports outside the service.
type ReportExporter interface {
	AppendDailyReport(ctx context.Context, report models.DailyRevenueReport) error
}

// Service exposes revenue analytics over the order history.
type Service struct {
	history  HistorySource
	stock    StockReader
	store    ReportStore
	exporter ReportExporter
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new reporting service instance. stock and exporter are optional.
func NewService(history HistorySource, stock StockReader, store ReportStore, exporter ReportExporter, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		history:  history,
		stock:    stock,
		store:    store,
		exporter: exporter,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// Revenue folds the order history into buckets of the given granularity.
func (s *Service) Revenue(ctx context.Context, granularity string) ([]models.RevenueBucket, error) {
	key, err := s.bucketKey(granularity)
	if err != nil {
		return nil, err
	}

	orders, err := s.history.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("load order history: %w", err)
	}

	return AggregateRevenue(orders, key), nil
}

// GenerateDailyReport aggregates the orders placed on day, stores the report
// and exports it when an exporter is configured.
func (s *Service) GenerateDailyReport(ctx context.Context, day time.Time) (models.DailyRevenueReport, error) {
	orders, err := s.history.History(ctx)
	if err != nil {
		return models.DailyRevenueReport{}, fmt.Errorf("load order history: %w", err)
	}

	key := DayKey(s.loc)
	report := models.DailyRevenueReport{
		Date:      key(day),
		CreatedAt: s.now().UTC(),
	}

	var milk, wool, milkRevenue, woolRevenue, revenue decimal.Decimal
	for _, o := range orders {
		if key(o.Date) != report.Date {
			continue
		}

		report.Orders++
		if o.Status == models.OrderStatusPartial {
			report.Partial++
		}

		milkCost, woolCost := o.Costs()
		milk = milk.Add(decimal.NewFromFloat(o.MilkGranted))
		wool = wool.Add(decimal.NewFromFloat(o.WoolGranted))
		milkRevenue = milkRevenue.Add(decimal.NewFromFloat(milkCost))
		woolRevenue = woolRevenue.Add(decimal.NewFromFloat(woolCost))
		revenue = revenue.Add(decimal.NewFromFloat(o.TotalCost))
	}

	report.MilkGranted = milk.InexactFloat64()
	report.WoolGranted = wool.InexactFloat64()
	report.MilkRevenue = milkRevenue.InexactFloat64()
	report.WoolRevenue = woolRevenue.InexactFloat64()
	report.Revenue = revenue.InexactFloat64()

	if s.stock != nil {
		snap, err := s.stock.Stock(ctx)
		if err != nil {
			s.logger.Debug("stock lookup for daily report failed", zap.Error(err))
		} else {
			report.MilkStock = snap.Ledger.Milk
			report.WoolStock = snap.Ledger.Wool
		}
	}

	if s.store != nil {
		if err := s.store.SaveDailyReport(ctx, report); err != nil {
			return report, fmt.Errorf("save daily report %s: %w", report.Date, err)
		}
	}

	if s.exporter != nil {
		if err := s.exporter.AppendDailyReport(ctx, report); err != nil {
			s.logger.Warn("daily report export failed", zap.String("date", report.Date), zap.Error(err))
		}
	}

	return report, nil
}

// Summary renders a one-line description of report.
func (s *Service) Summary(report models.DailyRevenueReport) string {
	if report.Orders == 0 {
		return fmt.Sprintf("Revenue (%s): no orders yet.", report.Date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Revenue (%s): %.2f across %d orders (milk %.2f L for %.2f, wool %.0f skins for %.2f).",
		report.Date, report.Revenue, report.Orders,
		report.MilkGranted, report.MilkRevenue, report.WoolGranted, report.WoolRevenue)
	if report.Partial > 0 {
		fmt.Fprintf(&b, " %d partially fulfilled.", report.Partial)
	}
	return b.String()
}

func (s *Service) bucketKey(granularity string) (BucketKey, error) {
	switch granularity {
	case "", GranularityDay:
		return DayKey(s.loc), nil
	case GranularityMonth:
		return MonthKey(s.loc), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGranularity, granularity)
	}
}
