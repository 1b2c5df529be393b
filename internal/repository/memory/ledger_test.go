package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

func TestLedgerCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	snap, err := l.Reset(ctx, models.StockLedger{Milk: 100, Wool: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Version)

	next, err := l.CompareAndSwap(ctx, snap.Version, models.StockLedger{Milk: 60, Wool: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next.Version)

	_, err = l.CompareAndSwap(ctx, snap.Version, models.StockLedger{Milk: 0, Wool: 0})
	assert.ErrorIs(t, err, models.ErrStaleSnapshot)

	current, _ := l.Snapshot(ctx)
	assert.Equal(t, 60.0, current.Ledger.Milk)
}

func TestLedgerRestore(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()
	_, _ = l.Reset(ctx, models.StockLedger{Milk: 10, Wool: 1})

	require.NoError(t, l.Restore(ctx, models.StockLedger{Milk: 5, Wool: 2}))

	snap, _ := l.Snapshot(ctx)
	assert.Equal(t, models.StockLedger{Milk: 15, Wool: 3}, snap.Ledger)
	assert.Equal(t, uint64(2), snap.Version)
}

func TestLedgerOnlyOneWriterWinsPerVersion(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()
	snap, _ := l.Reset(ctx, models.StockLedger{Milk: 100})

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.CompareAndSwap(ctx, snap.Version, models.StockLedger{Milk: 90}); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestOrderStoreKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewOrderStore(models.Order{ID: 1})

	_, err := s.PlaceOrder(ctx, models.Order{ID: 2})
	require.NoError(t, err)

	history, err := s.FetchOrderHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(1), history[0].ID)
	assert.Equal(t, int64(2), history[1].ID)
}
