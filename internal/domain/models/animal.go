package models

import "math"

// DaysPerYear is the dashboard convention for converting herd ages.
const DaysPerYear = 100

// Animal is a herd member as seen by the yield model.
type Animal struct {
	ID        int    `json:"id" bson:"animal_id"`
	Name      string `json:"name" bson:"name"`
	AgeInDays int    `json:"ageInDays" bson:"age_in_days"`
}

// AgeInYears reverses the days convention, e.g. 450 days -> 4.5 years.
func (a Animal) AgeInYears() float64 {
	return float64(a.AgeInDays) / DaysPerYear
}

// DaysFromYears converts an upstream age in years into whole days.
func DaysFromYears(years float64) int {
	if years <= 0 || math.IsNaN(years) {
		return 0
	}
	return int(math.Round(years * DaysPerYear))
}

// YieldProjection is recomputed from an animal's age on every query.
type YieldProjection struct {
	MilkPerDay        float64 `json:"milkPerDay"`
	LifetimeMilk      float64 `json:"lifetimeMilk"`
	WoolCount         int     `json:"woolCount"`
	ShaveIntervalDays float64 `json:"shaveIntervalDays"`
}

// HerdMember pairs an animal with its current projection.
type HerdMember struct {
	Animal
	Years      float64         `json:"age"`
	Projection YieldProjection `json:"projection"`
}
