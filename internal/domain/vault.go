package domain

import (
	"math/big"
	"time"
)

// VaultAccount is a token balance held on behalf of a wallet address. The
// vault plays the role the ERC-20 approve/transferFrom pair played on-chain:
// funding an order debits the buyer here, releases credit the counterparty.
type VaultAccount struct {
	Address   string
	Token     string
	Balance   *big.Int
	UpdatedAt time.Time
}

type VaultRepository interface {
	GetAccount(address, token string) (*VaultAccount, error)

	// Debit subtracts amount from the account balance. Fails with
	// ErrInsufficientFunds when the balance would go negative. The update
	// is optimistically locked: a concurrent writer aborts the enclosing
	// transaction instead of silently losing a write.
	Debit(address, token string, amount *big.Int) error

	// Credit adds amount to the account balance, creating the account on
	// first use.
	Credit(address, token string, amount *big.Int) error
}
