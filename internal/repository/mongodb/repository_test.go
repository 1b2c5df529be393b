package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

func getRepository(t *testing.T) *MongoDBRepository {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	repo, err := NewMongoDBRepository(ctx, uri, "yakshop_test")
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.client.Database("yakshop_test").Drop(context.Background())
		_ = repo.Close(context.Background())
	})
	return repo
}

func TestOrderHistoryRoundTrip(t *testing.T) {
	repo := getRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	first := models.Order{ID: 111111, MilkGranted: 10, MilkCost: models.Float(300), TotalCost: 300,
		Date: time.Date(2025, 1, 21, 9, 0, 0, 0, time.UTC), Status: models.OrderStatusCompleted}
	second := models.Order{ID: 222222, WoolGranted: 1, TotalCost: 500,
		Date: time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC), Status: models.OrderStatusPartial}

	_, err := repo.PlaceOrder(ctx, first)
	require.NoError(t, err)
	_, err = repo.PlaceOrder(ctx, second)
	require.NoError(t, err)

	_, err = repo.PlaceOrder(ctx, first)
	assert.ErrorIs(t, err, models.ErrSubmitFailed)

	history, err := repo.FetchOrderHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Nil(t, history[1].MilkCost)
}

func TestSaveDailyReportUpserts(t *testing.T) {
	repo := getRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveDailyReport(ctx, models.DailyRevenueReport{Date: "2025-01-21", Revenue: 100}))
	require.NoError(t, repo.SaveDailyReport(ctx, models.DailyRevenueReport{Date: "2025-01-21", Revenue: 250}))

	count, err := repo.collection(reportsCollection).CountDocuments(ctx, map[string]any{"date": "2025-01-21"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
