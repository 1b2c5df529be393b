// Package yield maps an animal's age in days to its milk and wool output.
//
// The curves are deliberately simple: milk declines linearly with age and
// shaving slows down as the animal grows older. Ages are expressed in days
// (years × 100) and must not be negative.
package yield

import (
	"math"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

const (
	baseMilkPerDay    = 50.0
	milkDeclinePerDay = 0.03

	firstShaveAge     = 100.0
	lastProductiveAge = 1000.0
	baseShaveInterval = 8.0
	shaveSlowdown     = 0.01
)

// MilkPerDay returns the liters produced on the given day of life, rounded to
// two decimals. The value goes negative past day 1666 and is not clamped, so
// callers can tell "past productive life" apart from zero.
func MilkPerDay(ageInDays float64) float64 {
	return round2(dailyMilk(ageInDays))
}

// LifetimeMilk accumulates the per-day output, rounded per day, from day 1 up
// to and including ageInDays. Negative totals are clamped to zero.
func LifetimeMilk(ageInDays float64) float64 {
	var total int64
	for day := 1; float64(day) <= ageInDays; day++ {
		total += int64(math.Round(dailyMilk(float64(day))))
	}
	if total < 0 {
		return 0
	}
	return float64(total)
}

// ShaveInterval returns the number of days between shavings at the given age,
// or zero for animals too young to be shaved.
func ShaveInterval(ageInDays float64) float64 {
	if ageInDays < firstShaveAge {
		return 0
	}
	return baseShaveInterval + float64(ageInDays*shaveSlowdown)
}

// WoolShaveCount counts the shavings an animal has had by ageInDays. The first
// shave happens at day 100 and none after day 1000.
func WoolShaveCount(ageInDays float64) float64 {
	if ageInDays < firstShaveAge {
		return 0
	}

	limit := math.Min(ageInDays, lastProductiveAge)
	count := 0
	for current := firstShaveAge; ; {
		count++
		current += ShaveInterval(current)
		if current > limit {
			break
		}
	}

	return round2(float64(count))
}

// Project bundles every yield figure for a single age.
func Project(ageInDays float64) models.YieldProjection {
	return models.YieldProjection{
		MilkPerDay:        MilkPerDay(ageInDays),
		LifetimeMilk:      LifetimeMilk(ageInDays),
		WoolCount:         int(WoolShaveCount(ageInDays)),
		ShaveIntervalDays: ShaveInterval(ageInDays),
	}
}

// dailyMilk is the unrounded curve. The explicit conversion keeps the
// multiplication from being fused with the subtraction.
func dailyMilk(ageInDays float64) float64 {
	return baseMilkPerDay - float64(ageInDays*milkDeclinePerDay)
}

func round2(v float64) float64 {
	return math.Round(float64(v*100)) / 100
}
