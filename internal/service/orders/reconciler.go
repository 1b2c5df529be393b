package orders

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

// Pricing holds per-unit prices and the per-field order bound.
type Pricing struct {
	MilkPerLiter  float64
	WoolPerSkin   float64
	MaxOrderUnits float64
}

// DefaultPricing is 30 per liter of milk, 500 per skin of wool and at most
// 1000 units per field.
func DefaultPricing() Pricing {
	return Pricing{MilkPerLiter: 30, WoolPerSkin: 500, MaxOrderUnits: 1000}
}

// Reconciliation is the outcome of evaluating a request against a stock ledger.
type Reconciliation struct {
	MilkRequested *float64
	WoolRequested *float64
	MilkGranted   float64
	WoolGranted   float64
	MilkCost      float64
	WoolCost      float64
	TotalCost     float64
	Status        models.OrderStatus
	// Shortfall is one of the ErrInsufficientStock* errors, or nil when the
	// request is fully covered.
	Shortfall error
}

// Order materializes the reconciliation as a history record.
func (r Reconciliation) Order(id int64, date time.Time) models.Order {
	order := models.Order{
		ID:            id,
		SchemaVersion: models.OrderSchemaVersion,
		MilkRequested: r.MilkRequested,
		WoolRequested: r.WoolRequested,
		MilkGranted:   r.MilkGranted,
		WoolGranted:   r.WoolGranted,
		MilkCost:      models.Float(r.MilkCost),
		WoolCost:      models.Float(r.WoolCost),
		TotalCost:     r.TotalCost,
		Date:          date,
		Status:        r.Status,
	}
	if r.Shortfall != nil {
		order.Shortfall = r.Shortfall.Error()
	}
	return order
}

// ValidateRequest checks the request shape without looking at stock.
func ValidateRequest(req models.OrderRequest) error {
	if absent(req.Milk) && absent(req.Wool) {
		return ErrMissingAmounts
	}
	if err := checkAmount("milk", req.Milk); err != nil {
		return err
	}
	return checkAmount("wool", req.Wool)
}

// Evaluate validates req against stock and computes what can be granted and
// what it costs. A shortfall on one resource never blocks the other; it is
// reported on the result rather than as an error.
func Evaluate(req models.OrderRequest, stock models.StockLedger, pricing Pricing) (Reconciliation, error) {
	if err := ValidateRequest(req); err != nil {
		return Reconciliation{}, err
	}

	milkWanted, woolWanted := amount(req.Milk), amount(req.Wool)
	milkShort := milkWanted > stock.Milk
	woolShort := woolWanted > stock.Wool

	rec := Reconciliation{
		MilkRequested: req.Milk,
		WoolRequested: req.Wool,
		MilkGranted:   math.Min(milkWanted, math.Max(stock.Milk, 0)),
		WoolGranted:   math.Min(woolWanted, math.Max(stock.Wool, 0)),
	}

	milkCost := decimal.NewFromFloat(rec.MilkGranted).Mul(decimal.NewFromFloat(pricing.MilkPerLiter)).Round(2)
	woolCost := decimal.NewFromFloat(rec.WoolGranted).Mul(decimal.NewFromFloat(pricing.WoolPerSkin)).Round(2)
	rec.MilkCost = milkCost.InexactFloat64()
	rec.WoolCost = woolCost.InexactFloat64()
	rec.TotalCost = milkCost.Add(woolCost).InexactFloat64()

	switch {
	case milkShort && woolShort:
		rec.Shortfall = ErrInsufficientStockBoth
	case milkShort:
		rec.Shortfall = ErrInsufficientStockMilk
	case woolShort:
		rec.Shortfall = ErrInsufficientStockWool
	}

	requested := milkWanted > 0 || woolWanted > 0
	granted := rec.MilkGranted > 0 || rec.WoolGranted > 0
	switch {
	case rec.Shortfall == nil:
		rec.Status = models.OrderStatusCompleted
	case requested && !granted:
		rec.Status = models.OrderStatusRejected
	default:
		rec.Status = models.OrderStatusPartial
	}

	return rec, nil
}

// Apply returns the ledger left after deducting the granted amounts.
func Apply(stock models.StockLedger, rec Reconciliation) models.StockLedger {
	return models.StockLedger{
		Milk: remaining(stock.Milk, rec.MilkGranted),
		Wool: remaining(stock.Wool, rec.WoolGranted),
	}
}

func remaining(available, granted float64) float64 {
	left := decimal.NewFromFloat(available).Sub(decimal.NewFromFloat(granted))
	if left.IsNegative() {
		return 0
	}
	return left.InexactFloat64()
}

func checkBounds(req models.OrderRequest, maxUnits float64) error {
	if maxUnits <= 0 {
		return nil
	}
	if amount(req.Milk) > maxUnits || amount(req.Wool) > maxUnits {
		return fmt.Errorf("%w: at most %g units per resource", ErrInvalidAmount, maxUnits)
	}
	return nil
}

func checkAmount(resource string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return fmt.Errorf("%w: %s is not a number", ErrInvalidAmount, resource)
	}
	if *v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidAmount, resource)
	}
	return nil
}

func absent(v *float64) bool {
	return v == nil || math.IsNaN(*v)
}

func amount(v *float64) float64 {
	if absent(v) {
		return 0
	}
	return *v
}
