package herd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

// Source retrieves herd and baseline stock data from upstream.
type Source interface {
	FetchHerd(ctx context.Context) ([]models.Animal, error)
	FetchStock(ctx context.Context) (models.StockLedger, error)
}

// LedgerWriter is the part of the stock ledger the herd service needs.
type LedgerWriter interface {
	Snapshot(ctx context.Context) (models.StockSnapshot, error)
	Reset(ctx context.Context, ledger models.StockLedger) (models.StockSnapshot, error)
}

// Service exposes the herd and keeps the stock ledger in line with it.
type Service struct {
	source         Source
	ledger         LedgerWriter
	remoteBaseline bool
	logger         *zap.Logger
}

// NewService wires a herd service. With remoteBaseline the ledger is seeded
// from the upstream /stock figures instead of the herd projection.
func NewService(source Source, ledger LedgerWriter, remoteBaseline bool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, ledger: ledger, remoteBaseline: remoteBaseline, logger: logger}
}

// Herd returns every animal with its current yield projection.
func (s *Service) Herd(ctx context.Context) ([]models.HerdMember, error) {
	animals, err := s.source.FetchHerd(ctx)
	if err != nil {
		return nil, err
	}
	return Members(animals), nil
}

// Member returns a single animal by name.
func (s *Service) Member(ctx context.Context, name string) (*models.HerdMember, error) {
	members, err := s.Herd(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].Name == name {
			return &members[i], nil
		}
	}
	return nil, ErrAnimalNotFound
}

// RefreshStock recomputes the ledger from scratch and stores it.
func (s *Service) RefreshStock(ctx context.Context) (models.StockSnapshot, error) {
	var (
		ledger models.StockLedger
		err    error
		size   int
	)

	if s.remoteBaseline {
		ledger, err = s.source.FetchStock(ctx)
		if err != nil {
			return models.StockSnapshot{}, err
		}
	} else {
		var animals []models.Animal
		animals, err = s.source.FetchHerd(ctx)
		if err != nil {
			return models.StockSnapshot{}, err
		}
		size = len(animals)
		ledger = AggregateStock(animals)
	}

	snap, err := s.ledger.Reset(ctx, ledger)
	if err != nil {
		return models.StockSnapshot{}, fmt.Errorf("store refreshed stock: %w", err)
	}

	s.logger.Info("stock refreshed",
		zap.Bool("remote_baseline", s.remoteBaseline),
		zap.Int("herd_size", size),
		zap.Float64("milk", ledger.Milk),
		zap.Float64("wool", ledger.Wool),
		zap.Uint64("version", snap.Version))

	return snap, nil
}

// Stock returns the current ledger snapshot, refreshing it first if it was
// never populated.
func (s *Service) Stock(ctx context.Context) (models.StockSnapshot, error) {
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return models.StockSnapshot{}, fmt.Errorf("read stock: %w", err)
	}
	if snap.Version == 0 {
		return s.RefreshStock(ctx)
	}
	return snap, nil
}
