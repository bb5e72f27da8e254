package mappers

import (
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMDispute(dispute *domain.Dispute) *models.DisputeModel {
	return &models.DisputeModel{
		ID:            dispute.ID,
		OrderID:       dispute.OrderID,
		Initiator:     dispute.Initiator,
		Reason:        string(dispute.Reason),
		Description:   dispute.Description,
		Status:        string(dispute.Status),
		Arbitrator:    dispute.Arbitrator,
		BuyerRelease:  AmountToString(dispute.BuyerRelease),
		SellerRelease: AmountToString(dispute.SellerRelease),
		CreatedAt:     dispute.CreatedAt,
		ResolvedAt:    dispute.ResolvedAt,
		UpdatedAt:     dispute.UpdatedAt,
	}
}

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	return &domain.Dispute{
		ID:            model.ID,
		OrderID:       model.OrderID,
		Initiator:     model.Initiator,
		Reason:        domain.DisputeReason(model.Reason),
		Description:   model.Description,
		Status:        domain.DisputeStatus(model.Status),
		Arbitrator:    model.Arbitrator,
		BuyerRelease:  AmountFromString(model.BuyerRelease),
		SellerRelease: AmountFromString(model.SellerRelease),
		CreatedAt:     model.CreatedAt,
		ResolvedAt:    model.ResolvedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
