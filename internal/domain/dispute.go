package domain

import (
	"math/big"
	"time"
)

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "OPEN"
	DisputeResolved DisputeStatus = "RESOLVED"
)

type DisputeReason string

const (
	ReasonProductNotReceived      DisputeReason = "PRODUCT_NOT_RECEIVED"
	ReasonQualityIssue            DisputeReason = "QUALITY_ISSUE"
	ReasonWrongItem               DisputeReason = "WRONG_ITEM"
	ReasonUnauthorizedTransaction DisputeReason = "UNAUTHORIZED_TRANSACTION"
	ReasonDamagedInTransit        DisputeReason = "DAMAGED_IN_TRANSIT"
	ReasonOther                   DisputeReason = "OTHER"
)

func (r DisputeReason) Valid() bool {
	switch r {
	case ReasonProductNotReceived, ReasonQualityIssue, ReasonWrongItem,
		ReasonUnauthorizedTransaction, ReasonDamagedInTransit, ReasonOther:
		return true
	default:
		return false
	}
}

type Dispute struct {
	ID            uint64
	OrderID       uint64
	Initiator     string
	Reason        DisputeReason
	Description   string
	Status        DisputeStatus
	Arbitrator    string
	BuyerRelease  *big.Int
	SellerRelease *big.Int
	CreatedAt     time.Time
	ResolvedAt    *time.Time
	UpdatedAt     time.Time
}

type DisputeRepository interface {
	CreateDispute(dispute *Dispute) error
	GetDisputeByID(disputeID uint64) (*Dispute, error)
	GetDisputeByOrderID(orderID uint64) (*Dispute, error)

	// MarkResolved flips an OPEN dispute to RESOLVED in a single guarded
	// update. Returns ErrDuplicateResolution when the dispute is no longer
	// open.
	MarkResolved(dispute *Dispute) error

	CountDisputes() (int64, error)
}
