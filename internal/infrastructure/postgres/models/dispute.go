package models

import "time"

type DisputeModel struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	OrderID       uint64 `gorm:"uniqueIndex:idx_dispute_order"`
	Order         OrderModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Initiator     string
	Reason        string
	Description   string
	Status        string `gorm:"index:idx_dispute_status"`
	Arbitrator    string
	BuyerRelease  string
	SellerRelease string
	CreatedAt     time.Time
	ResolvedAt    *time.Time
	UpdatedAt     time.Time
}
