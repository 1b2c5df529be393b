package models

import "time"

// DailyRevenueReport represents the aggregated daily sales stored in MongoDB.
type DailyRevenueReport struct {
	Date        string    `bson:"date" json:"date"`
	Orders      int       `bson:"orders" json:"orders"`
	Partial     int       `bson:"partial" json:"partial"`
	MilkGranted float64   `bson:"milk_granted" json:"milk_granted"`
	WoolGranted float64   `bson:"wool_granted" json:"wool_granted"`
	MilkRevenue float64   `bson:"milk_revenue" json:"milk_revenue"`
	WoolRevenue float64   `bson:"wool_revenue" json:"wool_revenue"`
	Revenue     float64   `bson:"revenue" json:"revenue"`
	MilkStock   float64   `bson:"milk_stock" json:"milk_stock"`
	WoolStock   float64   `bson:"wool_stock" json:"wool_stock"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
