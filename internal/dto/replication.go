package dto

import "github.com/shopspring/decimal"

// ReplicateRequest asks for the fixed expenses of the previous month to be
// copied into the target month. ExchangeRate is the fallback rate applied to
// secondary-currency copies when the source row's own rate is not wanted.
type ReplicateRequest struct {
	Year         int             `json:"year" binding:"required"`
	Month        int             `json:"month" binding:"required,min=1,max=12"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// ReplicationItem is the per-row outcome of a replication run. Partial
// failures are first-class values, not exceptions: successful inserts are
// kept even when later rows fail.
type ReplicationItem struct {
	Description string `json:"description"`
	OK          bool   `json:"ok"`
	Error       string `json:"error,omitempty"`
}

// ReplicationResult reports how many rows were created and how many failed.
type ReplicationResult struct {
	Created int               `json:"created"`
	Failed  int               `json:"failed"`
	Items   []ReplicationItem `json:"items"`
}
