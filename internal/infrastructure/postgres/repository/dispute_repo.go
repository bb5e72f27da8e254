package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDisputeRepository struct {
	db *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{db: db}
}

func (r *DefaultDisputeRepository) CreateDispute(dispute *domain.Dispute) error {
	disputeModel := mappers.ToGORMDispute(dispute)
	if err := r.db.Create(disputeModel).Error; err != nil {
		return err
	}
	dispute.ID = disputeModel.ID
	return nil
}

func (r *DefaultDisputeRepository) GetDisputeByID(disputeID uint64) (*domain.Dispute, error) {
	var disputeModel models.DisputeModel
	if err := r.db.First(&disputeModel, "id = ?", disputeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: dispute %d", domain.ErrNotFound, disputeID)
		}
		return nil, err
	}
	return mappers.ToDomainDispute(&disputeModel), nil
}

func (r *DefaultDisputeRepository) GetDisputeByOrderID(orderID uint64) (*domain.Dispute, error) {
	var disputeModel models.DisputeModel
	if err := r.db.First(&disputeModel, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: dispute for order %d", domain.ErrNotFound, orderID)
		}
		return nil, err
	}
	return mappers.ToDomainDispute(&disputeModel), nil
}

// MarkResolved records the arbitrator verdict. The status guard makes the
// resolution happen-at-most-once: a second arbitrator call finds no OPEN row.
func (r *DefaultDisputeRepository) MarkResolved(dispute *domain.Dispute) error {
	result := r.db.Model(&models.DisputeModel{}).
		Where("id = ? AND status = ?", dispute.ID, string(domain.DisputeOpen)).
		Updates(map[string]interface{}{
			"status":         string(domain.DisputeResolved),
			"arbitrator":     dispute.Arbitrator,
			"buyer_release":  mappers.AmountToString(dispute.BuyerRelease),
			"seller_release": mappers.AmountToString(dispute.SellerRelease),
			"resolved_at":    dispute.ResolvedAt,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetDisputeByID(dispute.ID); err != nil {
			return err
		}
		return fmt.Errorf("%w: dispute %d", domain.ErrDuplicateResolution, dispute.ID)
	}
	return nil
}

func (r *DefaultDisputeRepository) CountDisputes() (int64, error) {
	var total int64
	err := r.db.Model(&models.DisputeModel{}).Count(&total).Error
	return total, err
}
