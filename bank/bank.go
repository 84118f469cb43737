// Package bank keeps the customers and accounts of the bank in memory and
// persists them through a datastore.Store.
package bank

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/flow-hydraulics/flow-bank/accounts"
	"github.com/flow-hydraulics/flow-bank/configs"
	"github.com/flow-hydraulics/flow-bank/datastore"
	"github.com/flow-hydraulics/flow-bank/datastore/textfile"
	apperrors "github.com/flow-hydraulics/flow-bank/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account number is already in use")
	ErrUnreadableStore  = errors.New("refusing to overwrite stored data that could not be loaded")
)

// Bank is the in-memory store of customers and accounts.
//
// Customers are unique by name. Opening an account for a name that is
// already known reuses the stored customer record.
//
// Accounts are handed out as copies. Balance changes go through Deposit and
// Withdraw so that they are journaled and serialized with Save.
//
// If the store holds data that can not be loaded, the bank starts empty but
// Save refuses to overwrite that data.
type Bank struct {
	mu      sync.Mutex
	store   datastore.Store
	state   datastore.Snapshot
	loadErr error
	logger  *log.Logger
	now     func() time.Time
}

// New creates a bank and loads its previous state. By default state is kept
// in the text file at cfg.StoragePath. A missing or unreadable store is not
// an error, the bank then starts empty.
func New(cfg *configs.Config, opts ...Option) *Bank {
	b := &Bank{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.store == nil {
		b.store = textfile.NewStore(cfg.StoragePath)
	}

	if b.logger == nil {
		b.logger = log.StandardLogger()
	}

	b.Load() // nolint

	return b
}

// Load replaces the in-memory state with the content of the store and
// returns the number of accounts loaded. On error the bank is left empty.
// Any error other than missing data also blocks Save until a later Load
// succeeds.
func (b *Bank) Load() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = datastore.Snapshot{}
	b.loadErr = nil

	snap, err := b.store.Load()
	if err != nil {
		entry := b.logger.WithFields(log.Fields{"location": b.store.Location()})
		if apperrors.IsNotExist(err) {
			entry.Info("No previous account data found. Starting with an empty bank.")
		} else {
			b.loadErr = err
			entry.WithFields(log.Fields{"error": err}).Error("Unable to load account data. Starting with an empty bank.")
		}
		return 0, err
	}

	b.state = snap

	b.logger.
		WithFields(log.Fields{"location": b.store.Location(), "accounts": len(snap.Accounts)}).
		Infof("Loaded %d accounts from %s", len(snap.Accounts), b.store.Location())

	return len(snap.Accounts), nil
}

// OpenAccount validates the input and appends a new account. A customer whose
// name is not known yet needs a valid contact and is stored as well.
// Nothing is stored when an error is returned.
func (b *Bank) OpenAccount(number int64, customer accounts.Customer, initialBalance float64) (accounts.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := accounts.ValidateAccountNumber(number); err != nil {
		return accounts.Account{}, &apperrors.InputError{Field: "account number", Err: err}
	}

	if b.find(number) != nil {
		return accounts.Account{}, &apperrors.InputError{Field: "account number", Err: ErrDuplicateAccount}
	}

	if err := accounts.ValidateOpeningBalance(initialBalance); err != nil {
		return accounts.Account{}, &apperrors.InputError{Field: "initial balance", Err: err}
	}

	if existing := b.state.CustomerByName(customer.Name()); existing == nil {
		if err := accounts.ValidateCustomer(customer); err != nil {
			return accounts.Account{}, &apperrors.InputError{Field: "customer", Err: err}
		}
	} else if *existing != customer {
		b.logger.
			WithFields(log.Fields{"customer": customer.Name()}).
			Warn("Customer already exists, keeping the stored address and contact")
	}

	a := b.state.AddAccount(number, customer, initialBalance)

	b.logger.
		WithFields(log.Fields{"account": number, "customer": customer.Name()}).
		Info("Account opened")

	return *a, nil
}

// FindAccount returns a copy of the account with the given number.
func (b *Bank) FindAccount(number int64) (accounts.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a := b.find(number)
	if a == nil {
		return accounts.Account{}, ErrAccountNotFound
	}
	return *a, nil
}

func (b *Bank) find(number int64) *accounts.Account {
	for _, a := range b.state.Accounts {
		if a.Number() == number {
			return a
		}
	}
	return nil
}

// Deposit adds amount to an account and journals the change.
// The account is returned as it is after the call.
func (b *Bank) Deposit(number int64, amount float64) (accounts.Account, error) {
	return b.transact(number, accounts.Deposit, amount)
}

// Withdraw removes amount from an account if its balance covers it.
// A rejected withdrawal still returns the unchanged account with the error.
func (b *Bank) Withdraw(number int64, amount float64) (accounts.Account, error) {
	return b.transact(number, accounts.Withdrawal, amount)
}

func (b *Bank) transact(number int64, t accounts.TransactionType, amount float64) (accounts.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a := b.find(number)
	if a == nil {
		return accounts.Account{}, ErrAccountNotFound
	}

	var err error
	switch t {
	case accounts.Deposit:
		err = a.Deposit(amount)
	case accounts.Withdrawal:
		err = a.Withdraw(amount)
	}

	fields := log.Fields{"account": number, "type": t, "amount": amount}

	if err != nil {
		b.logger.WithFields(fields).WithFields(log.Fields{"error": err}).Debug("Transaction rejected")
		if errors.Is(err, accounts.ErrInvalidAmount) || errors.Is(err, accounts.ErrBalanceOverflow) {
			err = &apperrors.InputError{Field: "amount", Err: err}
		}
		return *a, err
	}

	tx := accounts.NewTransaction(a, t, amount, b.now())
	b.state.Transactions = append(b.state.Transactions, tx)

	b.logger.WithFields(fields).WithFields(log.Fields{"balance": a.Balance()}).Debug("Transaction done")

	return *a, nil
}

// Accounts returns copies of all accounts in the order they were opened.
func (b *Bank) Accounts() []accounts.Account {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]accounts.Account, len(b.state.Accounts))
	for i, a := range b.state.Accounts {
		out[i] = *a
	}
	return out
}

// Customers returns copies of the stored customer records.
func (b *Bank) Customers() []accounts.Customer {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]accounts.Customer, len(b.state.Customers))
	for i, c := range b.state.Customers {
		out[i] = *c
	}
	return out
}

// Transactions returns the journal of an account, oldest first.
func (b *Bank) Transactions(number int64) []accounts.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []accounts.Transaction
	for _, t := range b.state.Transactions {
		if t.AccountNumber == number {
			out = append(out, t)
		}
	}
	return out
}

// Save writes the current state to the store. It fails with
// ErrUnreadableStore when the last Load could not read the stored data.
func (b *Bank) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.loadErr != nil {
		err := &apperrors.StorageError{
			Op:   "save",
			Path: b.store.Location(),
			Err:  fmt.Errorf("%w: %v", ErrUnreadableStore, b.loadErr),
		}
		b.logger.WithFields(log.Fields{"error": err}).Error("Unable to save account details")
		return err
	}

	if err := b.store.Save(b.state); err != nil {
		b.logger.WithFields(log.Fields{"error": err}).Error("Unable to save account details")
		return err
	}

	b.logger.
		WithFields(log.Fields{"location": b.store.Location(), "accounts": len(b.state.Accounts)}).
		Info("Account details saved")

	return nil
}

// SaveToFile writes all accounts to path in the text file format, whichever
// store the bank uses.
func (b *Bank) SaveToFile(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := textfile.WriteFile(path, b.state.Accounts); err != nil {
		b.logger.WithFields(log.Fields{"error": err}).Error("Unable to save account details")
		return err
	}

	b.logger.
		WithFields(log.Fields{"location": path, "accounts": len(b.state.Accounts)}).
		Info("Account details saved")

	return nil
}

// Close persists the current state to the store.
func (b *Bank) Close() error {
	return b.Save()
}
