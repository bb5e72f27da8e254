package order

import (
	"github.com/swenautos/escrow-service/internal/domain"
)

func (uc *DefaultOrderUsecase) GetOrderByID(orderID uint64) (*domain.Order, error) {
	return uc.store.Orders().GetOrderByID(orderID)
}

func (uc *DefaultOrderUsecase) GetOrdersByBuyer(buyer string, offset, limit int) ([]*domain.Order, int64, error) {
	if offset < 0 {
		offset = 0
	}
	return uc.store.Orders().GetOrdersByBuyer(buyer, offset, uc.clampLimit(limit))
}

func (uc *DefaultOrderUsecase) GetOrdersBySeller(seller string, offset, limit int) ([]*domain.Order, int64, error) {
	if offset < 0 {
		offset = 0
	}
	return uc.store.Orders().GetOrdersBySeller(seller, offset, uc.clampLimit(limit))
}

func (uc *DefaultOrderUsecase) CountOrders() (int64, error) {
	return uc.store.Orders().CountOrders()
}
