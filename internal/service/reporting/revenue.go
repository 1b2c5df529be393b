package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// BucketKey maps an order date onto the bucket it is folded into.
type BucketKey func(time.Time) string

// DayKey buckets by calendar day in loc.
func DayKey(loc *time.Location) BucketKey {
	return layoutKey(dayLayout, loc)
}

// MonthKey buckets by calendar month in loc.
func MonthKey(loc *time.Location) BucketKey {
	return layoutKey(monthLayout, loc)
}

func layoutKey(layout string, loc *time.Location) BucketKey {
	if loc == nil {
		loc = time.UTC
	}
	return func(t time.Time) string {
		return t.In(loc).Format(layout)
	}
}

type revenueSums struct {
	milk, wool, total decimal.Decimal
}

// AggregateRevenue folds orders into one bucket per key, in the order keys are
// first encountered. Orders without per-resource costs count as zero for them.
func AggregateRevenue(orders []models.Order, key BucketKey) []models.RevenueBucket {
	var (
		keys []string
		sums = make(map[string]*revenueSums)
	)

	for _, o := range orders {
		k := key(o.Date)
		acc, ok := sums[k]
		if !ok {
			acc = &revenueSums{}
			sums[k] = acc
			keys = append(keys, k)
		}

		milk, wool := o.Costs()
		acc.milk = acc.milk.Add(decimal.NewFromFloat(milk))
		acc.wool = acc.wool.Add(decimal.NewFromFloat(wool))
		acc.total = acc.total.Add(decimal.NewFromFloat(o.TotalCost))
	}

	buckets := make([]models.RevenueBucket, 0, len(keys))
	for _, k := range keys {
		acc := sums[k]
		buckets = append(buckets, models.RevenueBucket{
			Date:      k,
			MilkCost:  acc.milk.InexactFloat64(),
			WoolCost:  acc.wool.InexactFloat64(),
			TotalCost: acc.total.InexactFloat64(),
		})
	}
	return buckets
}
