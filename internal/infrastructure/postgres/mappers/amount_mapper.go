package mappers

import "math/big"

// Amounts are stored as decimal strings: Postgres numeric columns and the
// 18-decimal token unit both exceed int64, and floats are forbidden for
// money.

func AmountToString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

func AmountFromString(s string) *big.Int {
	if s == "" {
		return big.NewInt(0)
	}
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return big.NewInt(0)
	}
	return amount
}
