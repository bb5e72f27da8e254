package models

import "time"

type ListingModel struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Seller       string `gorm:"index:idx_listing_seller"`
	Name         string
	Description  string
	Category     string `gorm:"index:idx_listing_category"`
	Price        string
	PaymentToken string
	Inventory    uint64
	Sold         uint64
	IsActive     bool `gorm:"index:idx_listing_active"`
	ContentHash  string
	CreatedAt    time.Time `gorm:"index:idx_listing_created"`
	UpdatedAt    time.Time
}
