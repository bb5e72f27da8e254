package repository

import (
	"errors"
	"time"

	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const settingArbitrator = "arbitrator_address"

type DefaultSettingsRepository struct {
	db *gorm.DB
}

func NewDefaultSettingsRepository(db *gorm.DB) *DefaultSettingsRepository {
	return &DefaultSettingsRepository{db: db}
}

func (r *DefaultSettingsRepository) GetArbitrator() (string, error) {
	var settingModel models.SettingModel
	if err := r.db.First(&settingModel, "key = ?", settingArbitrator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return settingModel.Value, nil
}

func (r *DefaultSettingsRepository) SetArbitrator(address string) error {
	settingModel := models.SettingModel{
		Key:       settingArbitrator,
		Value:     address,
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&settingModel).Error
}
