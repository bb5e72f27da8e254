package models

import "time"

type VaultAccountModel struct {
	Address   string `gorm:"primaryKey"`
	Token     string `gorm:"primaryKey"`
	Balance   string
	// Version guards read-modify-write balance updates (balances are
	// decimal strings, so the adjustment cannot happen in SQL).
	Version   uint64
	UpdatedAt time.Time
}

type SettingModel struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}
