package herd

import (
	"math"

	"github.com/mamadbah2/yakshop/internal/domain/models"
	"github.com/mamadbah2/yakshop/internal/domain/yield"
)

// AggregateStock sums the herd's projected daily milk and shaved wool. Animals
// past their productive life contribute no milk rather than negative milk.
// The result is always recomputed from the full herd.
func AggregateStock(animals []models.Animal) models.StockLedger {
	var milk, wool float64
	for _, a := range animals {
		age := float64(a.AgeInDays)
		milk += math.Max(0, yield.MilkPerDay(age))
		wool += yield.WoolShaveCount(age)
	}

	return models.StockLedger{
		Milk: math.Round(milk*100) / 100,
		Wool: math.Round(wool*100) / 100,
	}
}

// Members attaches a yield projection to every animal.
func Members(animals []models.Animal) []models.HerdMember {
	members := make([]models.HerdMember, 0, len(animals))
	for _, a := range animals {
		members = append(members, models.HerdMember{
			Animal:     a,
			Years:      a.AgeInYears(),
			Projection: yield.Project(float64(a.AgeInDays)),
		})
	}
	return members
}
