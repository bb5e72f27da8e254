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

type DefaultOrderRepository struct {
	db *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{db: db}
}

func (r *DefaultOrderRepository) CreateOrder(order *domain.Order) error {
	orderModel := mappers.ToGORMOrder(order)
	if err := r.db.Create(orderModel).Error; err != nil {
		return err
	}
	order.ID = orderModel.ID
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(orderID uint64) (*domain.Order, error) {
	var orderModel models.OrderModel
	if err := r.db.First(&orderModel, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&orderModel), nil
}

func (r *DefaultOrderRepository) UpdateOrder(order *domain.Order) error {
	return r.db.Save(mappers.ToGORMOrder(order)).Error
}

// TransitionStatus is the compare-and-swap at the heart of the state
// machine: of two racing callers only the first sees a row to update, the
// second observes the post-state and fails.
func (r *DefaultOrderRepository) TransitionStatus(orderID uint64, from, to domain.OrderStatus) error {
	result := r.db.Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetOrderByID(orderID); err != nil {
			return err
		}
		return fmt.Errorf("%w: order %d is not %s", domain.ErrInvalidStateTransition, orderID, from)
	}
	return nil
}

func (r *DefaultOrderRepository) GetOrdersByBuyer(buyer string, offset, limit int) ([]*domain.Order, int64, error) {
	return r.findOrders("buyer = ?", buyer, offset, limit)
}

func (r *DefaultOrderRepository) GetOrdersBySeller(seller string, offset, limit int) ([]*domain.Order, int64, error) {
	return r.findOrders("seller = ?", seller, offset, limit)
}

func (r *DefaultOrderRepository) findOrders(cond string, party string, offset, limit int) ([]*domain.Order, int64, error) {
	baseQuery := r.db.Model(&models.OrderModel{}).Where(cond, party)

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orderModels []models.OrderModel
	if err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orderModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i, orderModel := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModel)
	}
	return orders, total, nil
}

func (r *DefaultOrderRepository) CountOrders() (int64, error) {
	var total int64
	err := r.db.Model(&models.OrderModel{}).Count(&total).Error
	return total, err
}

func (r *DefaultOrderRepository) FindAutoReleasable(now time.Time) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.
		Where("status = ?", string(domain.StatusDelivered)).
		Where("auto_release_deadline IS NOT NULL AND auto_release_deadline < ?", now).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, len(orderModels))
	for i, orderModel := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModel)
	}
	return orders, nil
}
