package postgres

import (
	"log"

	"github.com/swenautos/escrow-service/internal/config"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.EscrowConfig) *gorm.DB {
	dsn := cfg.EscrowDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	if err := AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate db: %v\n", err.Error())
	}

	return db
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ListingModel{},
		&models.OrderModel{},
		&models.DisputeModel{},
		&models.RatingModel{},
		&models.SellerRatingModel{},
		&models.VaultAccountModel{},
		&models.SettingModel{},
	)
}
