package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer holds the session shopper's balance. The balance is deducted at
// most once per checkout, during settlement, and never goes negative: the
// checkout engine verifies coverage before calling Deduct.
type Customer struct {
	ID      string
	Name    string
	balance decimal.Decimal
}

func New(name string, balance decimal.Decimal) *Customer {
	return &Customer{
		ID:      uuid.NewString(),
		Name:    name,
		balance: balance,
	}
}

// Deduct lowers the balance by amount. The caller must have verified
// amount <= balance.
func (c *Customer) Deduct(amount decimal.Decimal) {
	c.balance = c.balance.Sub(amount)
}

func (c *Customer) Balance() decimal.Decimal {
	return c.balance
}
