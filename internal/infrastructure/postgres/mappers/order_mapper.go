package mappers

import (
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:                  order.ID,
		Reference:           order.Reference,
		Buyer:               order.Buyer,
		Seller:              order.Seller,
		ProductID:           order.ProductID,
		Quantity:            order.Quantity,
		Amount:              AmountToString(order.Amount),
		EscrowBalance:       AmountToString(order.EscrowBalance),
		PaymentToken:        order.PaymentToken,
		PaymentMethod:       string(order.PaymentMethod),
		ExternalPaymentID:   order.ExternalPaymentID,
		Status:              string(order.Status),
		TrackingNumber:      order.TrackingNumber,
		CreatedAt:           order.CreatedAt,
		FundedAt:            order.FundedAt,
		ShippedAt:           order.ShippedAt,
		DeliveredAt:         order.DeliveredAt,
		AutoReleaseDeadline: order.AutoReleaseDeadline,
		UpdatedAt:           order.UpdatedAt,
	}
}

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:                  model.ID,
		Reference:           model.Reference,
		Buyer:               model.Buyer,
		Seller:              model.Seller,
		ProductID:           model.ProductID,
		Quantity:            model.Quantity,
		Amount:              AmountFromString(model.Amount),
		EscrowBalance:       AmountFromString(model.EscrowBalance),
		PaymentToken:        model.PaymentToken,
		PaymentMethod:       domain.PaymentMethod(model.PaymentMethod),
		ExternalPaymentID:   model.ExternalPaymentID,
		Status:              domain.OrderStatus(model.Status),
		TrackingNumber:      model.TrackingNumber,
		CreatedAt:           model.CreatedAt,
		FundedAt:            model.FundedAt,
		ShippedAt:           model.ShippedAt,
		DeliveredAt:         model.DeliveredAt,
		AutoReleaseDeadline: model.AutoReleaseDeadline,
		UpdatedAt:           model.UpdatedAt,
	}
}
