package vault

import (
	"fmt"
	"math/big"

	"github.com/swenautos/escrow-service/internal/domain"
)

type VaultUsecase interface {
	Deposit(caller, address, token string, amount *big.Int) (*domain.VaultAccount, error)
	GetBalance(address, token string) (*domain.VaultAccount, error)
}

// DefaultVaultUsecase fronts the token vault. Deposits are owner-only: in
// production they are driven by the chain bridge, everything else moves
// funds through the order lifecycle.
type DefaultVaultUsecase struct {
	store domain.Store
	owner string
}

func NewDefaultVaultUsecase(store domain.Store, owner string) *DefaultVaultUsecase {
	return &DefaultVaultUsecase{store: store, owner: owner}
}

func (uc *DefaultVaultUsecase) Deposit(caller, address, token string, amount *big.Int) (*domain.VaultAccount, error) {
	if caller != uc.owner {
		return nil, fmt.Errorf("%w: only the owner may deposit", domain.ErrUnauthorized)
	}
	if address == "" || token == "" {
		return nil, fmt.Errorf("%w: address and token required", domain.ErrInvalidArgument)
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrInvalidArgument)
	}

	var account *domain.VaultAccount
	err := uc.store.InTx(func(s domain.Store) error {
		if err := s.Vault().Credit(address, token, amount); err != nil {
			return err
		}
		var err error
		account, err = s.Vault().GetAccount(address, token)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetBalance never 404s: an account that was never funded reads as zero.
func (uc *DefaultVaultUsecase) GetBalance(address, token string) (*domain.VaultAccount, error) {
	return uc.store.Vault().GetAccount(address, token)
}
