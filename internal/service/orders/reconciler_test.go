package orders

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

var plenty = models.StockLedger{Milk: 1000, Wool: 1000}

func request(milk, wool *float64) models.OrderRequest {
	return models.OrderRequest{Milk: milk, Wool: wool}
}

func TestEvaluateMissingAmounts(t *testing.T) {
	_, err := Evaluate(request(nil, nil), plenty, DefaultPricing())
	assert.ErrorIs(t, err, ErrMissingAmounts)

	nan := math.NaN()
	_, err = Evaluate(request(&nan, nil), plenty, DefaultPricing())
	assert.ErrorIs(t, err, ErrMissingAmounts)
}

func TestEvaluateInvalidAmounts(t *testing.T) {
	cases := map[string]models.OrderRequest{
		"negative milk":   request(models.Float(-1), nil),
		"negative wool":   request(models.Float(5), models.Float(-3)),
		"nan beside milk": request(models.Float(5), models.Float(math.NaN())),
		"infinite milk":   request(models.Float(math.Inf(1)), nil),
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Evaluate(req, plenty, DefaultPricing())
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestEvaluateCompleted(t *testing.T) {
	rec, err := Evaluate(request(models.Float(10), models.Float(2)), plenty, DefaultPricing())
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusCompleted, rec.Status)
	assert.NoError(t, rec.Shortfall)
	assert.Equal(t, 10.0, rec.MilkGranted)
	assert.Equal(t, 2.0, rec.WoolGranted)
	assert.Equal(t, 300.0, rec.MilkCost)
	assert.Equal(t, 1000.0, rec.WoolCost)
	assert.Equal(t, 1300.0, rec.TotalCost)
}

func TestEvaluateMilkShortfallCapsGrant(t *testing.T) {
	rec, err := Evaluate(request(models.Float(1500), models.Float(0)), plenty, DefaultPricing())
	require.NoError(t, err)

	assert.ErrorIs(t, rec.Shortfall, ErrInsufficientStockMilk)
	assert.ErrorIs(t, rec.Shortfall, ErrInsufficientStock)
	assert.Equal(t, models.OrderStatusPartial, rec.Status)
	assert.Equal(t, 1000.0, rec.MilkGranted)
	assert.Zero(t, rec.WoolGranted)
	assert.Equal(t, 30000.0, rec.TotalCost)
}

func TestEvaluateWoolShortfallDoesNotBlockMilk(t *testing.T) {
	stock := models.StockLedger{Milk: 85.5, Wool: 3}
	rec, err := Evaluate(request(models.Float(20), models.Float(5)), stock, DefaultPricing())
	require.NoError(t, err)

	assert.ErrorIs(t, rec.Shortfall, ErrInsufficientStockWool)
	assert.Equal(t, 20.0, rec.MilkGranted)
	assert.Equal(t, 3.0, rec.WoolGranted)
	assert.Equal(t, models.OrderStatusPartial, rec.Status)
}

func TestEvaluateBothShort(t *testing.T) {
	stock := models.StockLedger{Milk: 5, Wool: 1}
	rec, err := Evaluate(request(models.Float(10), models.Float(2)), stock, DefaultPricing())
	require.NoError(t, err)

	assert.ErrorIs(t, rec.Shortfall, ErrInsufficientStockBoth)
	assert.Equal(t, models.OrderStatusPartial, rec.Status)
	assert.Equal(t, 5.0*30+1.0*500, rec.TotalCost)
}

func TestEvaluateNothingAvailableIsRejected(t *testing.T) {
	rec, err := Evaluate(request(models.Float(10), nil), models.StockLedger{Wool: 4}, DefaultPricing())
	require.NoError(t, err)

	assert.ErrorIs(t, rec.Shortfall, ErrInsufficientStockMilk)
	assert.Equal(t, models.OrderStatusRejected, rec.Status)
	assert.Zero(t, rec.TotalCost)
}

func TestTotalCostIsSumOfParts(t *testing.T) {
	pricing := Pricing{MilkPerLiter: 0.1, WoolPerSkin: 0.2}
	rec, err := Evaluate(request(models.Float(3), models.Float(3)), plenty, pricing)
	require.NoError(t, err)

	assert.Equal(t, 0.3, rec.MilkCost)
	assert.Equal(t, 0.6, rec.WoolCost)
	assert.Equal(t, 0.9, rec.TotalCost)
}

func TestApplyRoundTrip(t *testing.T) {
	rec, err := Evaluate(request(models.Float(1500), nil), plenty, DefaultPricing())
	require.NoError(t, err)

	left := Apply(plenty, rec)
	assert.Equal(t, plenty.Milk, rec.MilkGranted+left.Milk)
	assert.Zero(t, left.Milk)
	assert.Equal(t, plenty.Wool, left.Wool)

	stock := models.StockLedger{Milk: 85.5, Wool: 154}
	rec, err = Evaluate(request(models.Float(20.2), models.Float(4)), stock, DefaultPricing())
	require.NoError(t, err)

	left = Apply(stock, rec)
	assert.Equal(t, 65.3, left.Milk)
	assert.Equal(t, 150.0, left.Wool)
}

func TestOrderCarriesShortfall(t *testing.T) {
	rec, err := Evaluate(request(models.Float(1500), nil), plenty, DefaultPricing())
	require.NoError(t, err)

	order := rec.Order(123456, time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, models.OrderSchemaVersion, order.SchemaVersion)
	assert.Equal(t, "insufficient stock for milk", order.Shortfall)
	require.NotNil(t, order.MilkCost)
	assert.Equal(t, 30000.0, *order.MilkCost)
	assert.Equal(t, *order.MilkCost+*order.WoolCost, order.TotalCost)
}
