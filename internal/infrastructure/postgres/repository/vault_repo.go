package repository

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultVaultRepository struct {
	db *gorm.DB
}

func NewDefaultVaultRepository(db *gorm.DB) *DefaultVaultRepository {
	return &DefaultVaultRepository{db: db}
}

func (r *DefaultVaultRepository) GetAccount(address, token string) (*domain.VaultAccount, error) {
	var accountModel models.VaultAccountModel
	if err := r.db.First(&accountModel, "address = ? AND token = ?", address, token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.VaultAccount{Address: address, Token: token, Balance: big.NewInt(0)}, nil
		}
		return nil, err
	}
	return &domain.VaultAccount{
		Address:   accountModel.Address,
		Token:     accountModel.Token,
		Balance:   mappers.AmountFromString(accountModel.Balance),
		UpdatedAt: accountModel.UpdatedAt,
	}, nil
}

func (r *DefaultVaultRepository) Debit(address, token string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("%w: debit amount must be non-negative", domain.ErrAmountMismatch)
	}

	var accountModel models.VaultAccountModel
	if err := r.db.First(&accountModel, "address = ? AND token = ?", address, token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s has no %s balance", domain.ErrInsufficientFunds, address, token)
		}
		return err
	}

	balance := mappers.AmountFromString(accountModel.Balance)
	newBalance := new(big.Int).Sub(balance, amount)
	if newBalance.Sign() < 0 {
		return fmt.Errorf("%w: %s has %s, needs %s", domain.ErrInsufficientFunds, address, balance, amount)
	}

	return r.applyBalance(&accountModel, newBalance)
}

func (r *DefaultVaultRepository) Credit(address, token string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("%w: credit amount must be non-negative", domain.ErrAmountMismatch)
	}

	accountModel := models.VaultAccountModel{Address: address, Token: token, Balance: "0"}
	if err := r.db.FirstOrCreate(&accountModel, models.VaultAccountModel{Address: address, Token: token}).Error; err != nil {
		return err
	}

	newBalance := new(big.Int).Add(mappers.AmountFromString(accountModel.Balance), amount)
	return r.applyBalance(&accountModel, newBalance)
}

// applyBalance writes the new balance under an optimistic version guard.
// Balances are decimal strings, so the adjustment cannot be pushed into SQL;
// the version column makes a lost concurrent update abort the enclosing
// transaction instead of disappearing.
func (r *DefaultVaultRepository) applyBalance(accountModel *models.VaultAccountModel, newBalance *big.Int) error {
	result := r.db.Model(&models.VaultAccountModel{}).
		Where("address = ? AND token = ? AND version = ?", accountModel.Address, accountModel.Token, accountModel.Version).
		Updates(map[string]interface{}{
			"balance":    newBalance.String(),
			"version":    accountModel.Version + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("vault account %s/%s modified concurrently", accountModel.Address, accountModel.Token)
	}
	return nil
}
