package gorm

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/flow-hydraulics/flow-bank/accounts"
	"github.com/flow-hydraulics/flow-bank/datastore"
	"github.com/flow-hydraulics/flow-bank/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRow struct {
	ID       uint
	Name     string
	Address  string
	Contact  string
	Position int
}

func (customerRow) TableName() string {
	return "customers"
}

type accountRow struct {
	Number     int64
	CustomerID uint
	Balance    float64
	Position   int
}

func (accountRow) TableName() string {
	return "accounts"
}

type transactionRow struct {
	ID            string
	AccountNumber int64
	Type          string
	Amount        float64
	Balance       float64
	Position      int
	CreatedAt     time.Time
}

func (transactionRow) TableName() string {
	return "transactions"
}

// Store is a datastore.Store that keeps the bank in three tables.
// Save replaces their whole content.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db}
}

func (s *Store) Location() string {
	return fmt.Sprintf("%s database", s.db.Dialector.Name())
}

func (s *Store) Load() (snap datastore.Snapshot, err error) {
	var (
		cc []customerRow
		aa []accountRow
		tt []transactionRow
	)

	if err := s.db.Order("position asc").Find(&cc).Error; err != nil {
		return snap, s.wrap("load", err)
	}
	if err := s.db.Order("position asc").Find(&aa).Error; err != nil {
		return snap, s.wrap("load", err)
	}
	if err := s.db.Order("position asc").Find(&tt).Error; err != nil {
		return snap, s.wrap("load", err)
	}

	if len(aa) == 0 {
		return snap, s.wrap("load", fs.ErrNotExist)
	}

	byID := make(map[uint]*accounts.Customer, len(cc))
	for _, r := range cc {
		c := accounts.NewCustomer(r.Name, r.Address, r.Contact)
		byID[r.ID] = &c
		snap.Customers = append(snap.Customers, &c)
	}

	for _, r := range aa {
		c, ok := byID[r.CustomerID]
		if !ok {
			return datastore.Snapshot{}, s.wrap("load", fmt.Errorf("account %d references missing customer %d", r.Number, r.CustomerID))
		}
		snap.Accounts = append(snap.Accounts, accounts.NewAccount(r.Number, c, r.Balance))
	}

	for _, r := range tt {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return datastore.Snapshot{}, s.wrap("load", fmt.Errorf("transaction %q: %w", r.ID, err))
		}
		snap.Transactions = append(snap.Transactions, accounts.Transaction{
			ID:            id,
			AccountNumber: r.AccountNumber,
			Type:          accounts.TransactionType(r.Type),
			Amount:        r.Amount,
			Balance:       r.Balance,
			CreatedAt:     r.CreatedAt,
		})
	}

	return snap, nil
}

func (s *Store) Save(snap datastore.Snapshot) error {
	ids := make(map[*accounts.Customer]uint, len(snap.Customers))
	cc := make([]customerRow, len(snap.Customers))
	for i, c := range snap.Customers {
		id := uint(i + 1)
		ids[c] = id
		cc[i] = customerRow{ID: id, Name: c.Name(), Address: c.Address(), Contact: c.Contact(), Position: i}
	}

	aa := make([]accountRow, len(snap.Accounts))
	for i, a := range snap.Accounts {
		id, ok := ids[a.Customer()]
		if !ok {
			return s.wrap("save", fmt.Errorf("account %d has a customer that is not part of the snapshot", a.Number()))
		}
		aa[i] = accountRow{Number: a.Number(), CustomerID: id, Balance: a.Balance(), Position: i}
	}

	tt := make([]transactionRow, len(snap.Transactions))
	for i, t := range snap.Transactions {
		tt[i] = transactionRow{
			ID:            t.ID.String(),
			AccountNumber: t.AccountNumber,
			Type:          string(t.Type),
			Amount:        t.Amount,
			Balance:       t.Balance,
			Position:      i,
			CreatedAt:     t.CreatedAt,
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&transactionRow{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&accountRow{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&customerRow{}).Error; err != nil {
			return err
		}

		if len(cc) > 0 {
			if err := tx.Create(&cc).Error; err != nil {
				return err
			}
		}
		if len(aa) > 0 {
			if err := tx.Create(&aa).Error; err != nil {
				return err
			}
		}
		if len(tt) > 0 {
			if err := tx.Create(&tt).Error; err != nil {
				return err
			}
		}
		return nil
	})

	return s.wrap("save", err)
}

func (s *Store) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &errors.StorageError{Op: op, Path: s.Location(), Err: err}
}
