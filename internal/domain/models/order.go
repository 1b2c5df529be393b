package models

import "time"

// OrderSchemaVersion is the current shape of persisted orders. Version 1
// records (no schemaVersion field) predate per-resource costs.
const OrderSchemaVersion = 2

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusPartial   OrderStatus = "partial"
	OrderStatusRejected  OrderStatus = "rejected"
)

// OrderRequest carries the requested amounts. A nil field was not requested.
type OrderRequest struct {
	Milk *float64 `json:"milk"`
	Wool *float64 `json:"wool"`
}

// Order is a reconciled order as stored in the history.
type Order struct {
	ID            int64       `json:"id" bson:"order_id"`
	SchemaVersion int         `json:"schemaVersion,omitempty" bson:"schema_version,omitempty"`
	MilkRequested *float64    `json:"milkRequested,omitempty" bson:"milk_requested,omitempty"`
	WoolRequested *float64    `json:"woolRequested,omitempty" bson:"wool_requested,omitempty"`
	MilkGranted   float64     `json:"milk" bson:"milk"`
	WoolGranted   float64     `json:"wool" bson:"wool"`
	MilkCost      *float64    `json:"milkCost,omitempty" bson:"milk_cost,omitempty"`
	WoolCost      *float64    `json:"woolCost,omitempty" bson:"wool_cost,omitempty"`
	TotalCost     float64     `json:"totalCost" bson:"total_cost"`
	Date          time.Time   `json:"date" bson:"date"`
	Status        OrderStatus `json:"orderStatus,omitempty" bson:"order_status,omitempty"`
	Shortfall     string      `json:"shortfall,omitempty" bson:"shortfall,omitempty"`
}

// Costs returns the per-resource costs, treating absent values as zero.
func (o Order) Costs() (milk, wool float64) {
	if o.MilkCost != nil {
		milk = *o.MilkCost
	}
	if o.WoolCost != nil {
		wool = *o.WoolCost
	}
	return milk, wool
}

// Float returns a pointer to v, for populating optional fields.
func Float(v float64) *float64 {
	return &v
}
