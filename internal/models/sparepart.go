package models

// Stock status values, derived from current stock against min/max.
const (
	StockLow    = "low"
	StockNormal = "normal"
	StockHigh   = "high"
)

// Spare part request urgencies and statuses.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"

	RequestPending   = "pending"
	RequestApproved  = "approved"
	RequestDelivered = "delivered"
	RequestRejected  = "rejected"
)

// SparePart is one warehouse inventory item, optionally tied to a machine.
type SparePart struct {
	ID                string  `bson:"id" json:"id"`
	Name              string  `bson:"name" json:"name"`
	InternalReference string  `bson:"internal_reference" json:"internal_reference"`
	ExternalReference string  `bson:"external_reference" json:"external_reference"`
	Description       string  `bson:"description" json:"description"`
	Location          string  `bson:"location" json:"location"`
	MachineID         string  `bson:"machine_id" json:"machine_id"`
	StockCurrent      int     `bson:"stock_current" json:"stock_current"`
	StockMin          int     `bson:"stock_min" json:"stock_min"`
	StockMax          int     `bson:"stock_max" json:"stock_max"`
	Unit              string  `bson:"unit" json:"unit"`
	Supplier          string  `bson:"supplier" json:"supplier"`
	Price             float64 `bson:"price" json:"price"`
	CreatedAt         string  `bson:"created_at" json:"created_at"`
}

// StockStatus buckets the current stock level.
func (p SparePart) StockStatus() string {
	if p.StockCurrent <= p.StockMin {
		return StockLow
	}
	if p.StockCurrent >= p.StockMax {
		return StockHigh
	}
	return StockNormal
}

// SparePartView adds derived and resolved display fields.
type SparePartView struct {
	SparePart
	Status      string `json:"status"`
	MachineName string `json:"machine_name"`
}

type SparePartRequestDoc struct {
	ID          string `bson:"id" json:"id"`
	SparePartID string `bson:"spare_part_id" json:"spare_part_id"`
	Quantity    int    `bson:"quantity" json:"quantity"`
	Reason      string `bson:"reason" json:"reason"`
	Urgency     string `bson:"urgency" json:"urgency"`
	Status      string `bson:"status" json:"status"`
	RequestedBy string `bson:"requested_by" json:"requested_by"`
	ResolvedBy  string `bson:"resolved_by" json:"resolved_by"`
	CreatedAt   string `bson:"created_at" json:"created_at"`
	ResolvedAt  string `bson:"resolved_at" json:"resolved_at"`
}

type SparePartRequestView struct {
	SparePartRequestDoc
	SparePartName   string `json:"spare_part_name"`
	RequestedByName string `json:"requested_by_name"`
}

type CreateSparePartRequest struct {
	Name              string  `json:"name" binding:"required"`
	InternalReference string  `json:"internal_reference" binding:"required"`
	ExternalReference string  `json:"external_reference"`
	Description       string  `json:"description"`
	Location          string  `json:"location"`
	MachineID         string  `json:"machine_id"`
	StockCurrent      int     `json:"stock_current"`
	StockMin          int     `json:"stock_min"`
	StockMax          int     `json:"stock_max"`
	Unit              string  `json:"unit"`
	Supplier          string  `json:"supplier"`
	Price             float64 `json:"price"`
}

type CreatePartRequestRequest struct {
	SparePartID string `json:"spare_part_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
	Reason      string `json:"reason"`
	Urgency     string `json:"urgency"`
}
