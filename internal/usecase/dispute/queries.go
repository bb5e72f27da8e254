package dispute

import (
	"github.com/swenautos/escrow-service/internal/domain"
)

func (uc *DefaultDisputeUsecase) GetDisputeByID(disputeID uint64) (*domain.Dispute, error) {
	return uc.store.Disputes().GetDisputeByID(disputeID)
}

func (uc *DefaultDisputeUsecase) GetDisputeByOrderID(orderID uint64) (*domain.Dispute, error) {
	return uc.store.Disputes().GetDisputeByOrderID(orderID)
}

func (uc *DefaultDisputeUsecase) CountDisputes() (int64, error) {
	return uc.store.Disputes().CountDisputes()
}
