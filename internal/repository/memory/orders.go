package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

// OrderStore is an append-only in-memory order history.
type OrderStore struct {
	mu     sync.RWMutex
	orders []models.Order
}

// NewOrderStore returns an order store seeded with history, oldest first.
func NewOrderStore(history ...models.Order) *OrderStore {
	return &OrderStore{orders: slices.Clone(history)}
}

// PlaceOrder appends order to the history.
func (s *OrderStore) PlaceOrder(_ context.Context, order models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append(s.orders, order)
	return &order, nil
}

// FetchOrderHistory returns a copy of the history in insertion order.
func (s *OrderStore) FetchOrderHistory(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.orders), nil
}

// ReportStore keeps daily revenue reports in memory.
type ReportStore struct {
	mu      sync.Mutex
	reports []models.DailyRevenueReport
}

// NewReportStore returns an empty report store.
func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// SaveDailyReport records report.
func (s *ReportStore) SaveDailyReport(_ context.Context, report models.DailyRevenueReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append(s.reports, report)
	return nil
}

// Reports returns every saved report.
func (s *ReportStore) Reports() []models.DailyRevenueReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.reports)
}
