package orders

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

// StockReader returns the snapshot an order is validated against.
type StockReader interface {
	Stock(ctx context.Context) (models.StockSnapshot, error)
}

// LedgerStore applies reconciliation results to the stock ledger.
type LedgerStore interface {
	CompareAndSwap(ctx context.Context, expected uint64, ledger models.StockLedger) (models.StockSnapshot, error)
	Restore(ctx context.Context, delta models.StockLedger) error
}

// OrderStore persists orders and returns the history oldest first.
type OrderStore interface {
	PlaceOrder(ctx context.Context, order models.Order) (*models.Order, error)
	FetchOrderHistory(ctx context.Context) ([]models.Order, error)
}

// Service validates, reconciles and records orders.
type Service struct {
	stock   StockReader
	ledger  LedgerStore
	store   OrderStore
	pricing Pricing
	logger  *zap.Logger
	now     func() time.Time
	newID   func() int64
}

// NewService constructs an order service.
func NewService(stock StockReader, ledger LedgerStore, store OrderStore, pricing Pricing, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		stock:   stock,
		ledger:  ledger,
		store:   store,
		pricing: pricing,
		logger:  logger,
		now:     time.Now,
		newID:   randomOrderID,
	}
}

// Pricing returns the prices orders are charged at.
func (s *Service) Pricing() Pricing {
	return s.pricing
}

// Quote evaluates req against the current stock without placing it.
func (s *Service) Quote(ctx context.Context, req models.OrderRequest) (Reconciliation, error) {
	if err := s.validate(req); err != nil {
		return Reconciliation{}, err
	}

	snap, err := s.stock.Stock(ctx)
	if err != nil {
		return Reconciliation{}, err
	}
	return Evaluate(req, snap.Ledger, s.pricing)
}

// PlaceOrder reconciles req against a stock snapshot, deducts the granted
// amounts if the snapshot is still current and records the order. Completed
// and partial orders are both recorded; an order of which nothing could be
// granted is rejected with its shortfall error and leaves no trace.
func (s *Service) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	snap, err := s.stock.Stock(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := Evaluate(req, snap.Ledger, s.pricing)
	if err != nil {
		return nil, err
	}

	if rec.Status == models.OrderStatusRejected {
		s.logger.Info("order rejected", zap.Error(rec.Shortfall), zap.Uint64("stock_version", snap.Version))
		return nil, rec.Shortfall
	}

	if _, err := s.ledger.CompareAndSwap(ctx, snap.Version, Apply(snap.Ledger, rec)); err != nil {
		if errors.Is(err, models.ErrStaleSnapshot) {
			s.logger.Warn("order raced with another stock update", zap.Uint64("stock_version", snap.Version))
			return nil, err
		}
		return nil, fmt.Errorf("deduct stock: %w", err)
	}

	order := rec.Order(s.newID(), s.now().UTC())

	stored, err := s.store.PlaceOrder(ctx, order)
	if err != nil {
		delta := models.StockLedger{Milk: rec.MilkGranted, Wool: rec.WoolGranted}
		if restoreErr := s.ledger.Restore(ctx, delta); restoreErr != nil {
			s.logger.Error("failed to restore stock after submit failure",
				zap.Error(restoreErr), zap.Int64("order_id", order.ID))
		}
		if !errors.Is(err, models.ErrSubmitFailed) {
			err = fmt.Errorf("%w: %w", models.ErrSubmitFailed, err)
		}
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Int64("order_id", stored.ID),
		zap.String("status", string(stored.Status)),
		zap.Float64("milk", stored.MilkGranted),
		zap.Float64("wool", stored.WoolGranted),
		zap.Float64("total_cost", stored.TotalCost))

	return stored, nil
}

// History returns the recorded orders, oldest first.
func (s *Service) History(ctx context.Context) ([]models.Order, error) {
	return s.store.FetchOrderHistory(ctx)
}

func (s *Service) validate(req models.OrderRequest) error {
	if err := ValidateRequest(req); err != nil {
		return err
	}
	return checkBounds(req, s.pricing.MaxOrderUnits)
}

// randomOrderID returns a six digit identifier, matching the ids the
// dashboard has always shown.
func randomOrderID() int64 {
	return 100000 + rand.Int63n(900000)
}
