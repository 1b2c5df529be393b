package models

// RevenueBucket is the revenue folded from all orders sharing a date key.
type RevenueBucket struct {
	Date      string  `json:"date"`
	MilkCost  float64 `json:"milkCost"`
	WoolCost  float64 `json:"woolCost"`
	TotalCost float64 `json:"totalCost"`
}
