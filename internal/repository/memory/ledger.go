// Package memory holds process-local stores used for development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

// Ledger is a mutex-guarded, version-stamped stock ledger.
type Ledger struct {
	mu       sync.RWMutex
	snapshot models.StockSnapshot
	now      func() time.Time
}

// NewLedger returns an empty ledger at version 0.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// Snapshot returns the current ledger state.
func (l *Ledger) Snapshot(_ context.Context) (models.StockSnapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot, nil
}

// Reset replaces the ledger unconditionally, as done on a full herd refresh.
func (l *Ledger) Reset(_ context.Context, ledger models.StockLedger) (models.StockSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snapshot = models.StockSnapshot{
		Ledger:      ledger,
		Version:     l.snapshot.Version + 1,
		RefreshedAt: l.now().UTC(),
	}
	return l.snapshot, nil
}

// CompareAndSwap writes ledger only if the current version equals expected.
func (l *Ledger) CompareAndSwap(_ context.Context, expected uint64, ledger models.StockLedger) (models.StockSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.snapshot.Version != expected {
		return models.StockSnapshot{}, fmt.Errorf("%w: expected version %d, current %d", models.ErrStaleSnapshot, expected, l.snapshot.Version)
	}

	l.snapshot.Ledger = ledger
	l.snapshot.Version++
	return l.snapshot, nil
}

// Restore adds delta back to the ledger.
func (l *Ledger) Restore(_ context.Context, delta models.StockLedger) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snapshot.Ledger.Milk += delta.Milk
	l.snapshot.Ledger.Wool += delta.Wool
	l.snapshot.Version++
	return nil
}
