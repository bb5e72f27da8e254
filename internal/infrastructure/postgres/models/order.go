package models

import "time"

type OrderModel struct {
	ID                  uint64 `gorm:"primaryKey;autoIncrement"`
	Reference           string `gorm:"uniqueIndex:idx_order_reference"`
	Buyer               string `gorm:"index:idx_order_buyer"`
	Seller              string `gorm:"index:idx_order_seller"`
	ProductID           uint64 `gorm:"index:idx_order_product"`
	ProductListing      ListingModel `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Quantity            uint64
	Amount              string
	EscrowBalance       string
	PaymentToken        string
	PaymentMethod       string
	ExternalPaymentID   string
	Status              string `gorm:"index:idx_order_status_deadline"`
	TrackingNumber      string
	CreatedAt           time.Time `gorm:"index:idx_order_created"`
	FundedAt            *time.Time
	ShippedAt           *time.Time
	DeliveredAt         *time.Time
	AutoReleaseDeadline *time.Time `gorm:"index:idx_order_status_deadline"`
	UpdatedAt           time.Time
}
