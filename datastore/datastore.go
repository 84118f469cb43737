// Package datastore defines how bank state is handed to and from a storage
// backend.
package datastore

import (
	"github.com/flow-hydraulics/flow-bank/accounts"
)

// Store persists a full Snapshot of the bank.
type Store interface {
	// Load returns the persisted state. Implementations return an error
	// satisfying errors.IsNotExist when nothing has been persisted yet.
	Load() (Snapshot, error)

	// Save replaces the persisted state with s.
	Save(s Snapshot) error

	// Location describes where the data lives, for log messages.
	Location() string
}

// Snapshot is the bank state in insertion order.
// Every account's customer pointer refers to an element of Customers.
type Snapshot struct {
	Customers    []*accounts.Customer
	Accounts     []*accounts.Account
	Transactions []accounts.Transaction
}

// CustomerByName returns the first customer named name.
func (s *Snapshot) CustomerByName(name string) *accounts.Customer {
	for _, c := range s.Customers {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// AddAccount appends an account, reusing an existing customer with the same
// name instead of c when there is one.
func (s *Snapshot) AddAccount(number int64, c accounts.Customer, balance float64) *accounts.Account {
	canonical := s.CustomerByName(c.Name())
	if canonical == nil {
		canonical = &c
		s.Customers = append(s.Customers, canonical)
	}
	a := accounts.NewAccount(number, canonical, balance)
	s.Accounts = append(s.Accounts, a)
	return a
}
