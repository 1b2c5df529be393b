package models

import "time"

// StockLedger holds the aggregate milk (liters) and wool (skins) available.
type StockLedger struct {
	Milk float64 `json:"milk" bson:"milk"`
	Wool float64 `json:"wool" bson:"wool"`
}

// StockSnapshot is a version-stamped read of the ledger. Writers must present
// the version they read; a mismatch means another order got there first.
type StockSnapshot struct {
	Ledger      StockLedger `json:"ledger"`
	Version     uint64      `json:"version"`
	RefreshedAt time.Time   `json:"refreshedAt"`
}
