package accounts

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
)

// Transaction is a journal entry for a balance change on an account.
// Balance holds the account balance after the change.
type Transaction struct {
	ID            uuid.UUID
	AccountNumber int64
	Type          TransactionType
	Amount        float64
	Balance       float64
	CreatedAt     time.Time
}

// NewTransaction records a balance change that has already been applied to a.
func NewTransaction(a *Account, t TransactionType, amount float64, at time.Time) Transaction {
	return Transaction{
		ID:            uuid.New(),
		AccountNumber: a.number,
		Type:          t,
		Amount:        amount,
		Balance:       a.balance,
		CreatedAt:     at,
	}
}
