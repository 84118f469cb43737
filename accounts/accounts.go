// Package accounts provides the customer and account records of the bank.
package accounts

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidAmount     = errors.New("amount must be a finite number greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceOverflow   = errors.New("balance would exceed the supported range")
)

// Customer is an immutable customer record.
type Customer struct {
	name    string
	address string
	contact string
}

// NewCustomer creates a customer value. It does not validate the contact,
// see ValidateContact.
func NewCustomer(name, address, contact string) Customer {
	return Customer{name: name, address: address, contact: contact}
}

func (c Customer) Name() string    { return c.name }
func (c Customer) Address() string { return c.address }
func (c Customer) Contact() string { return c.contact }

// Account struct represents a bank account owned by a customer.
// The customer pointer refers to the canonical record kept by the bank.
type Account struct {
	number   int64
	customer *Customer
	balance  float64
}

// NewAccount creates an account. Validation of the number and balance is
// left to the caller.
func NewAccount(number int64, customer *Customer, balance float64) *Account {
	return &Account{number: number, customer: customer, balance: balance}
}

func (a *Account) Number() int64       { return a.number }
func (a *Account) Customer() *Customer { return a.customer }
func (a *Account) Balance() float64    { return a.balance }

// Deposit adds amount to the balance. Zero, negative and non-finite amounts
// are rejected and leave the balance untouched, as is a deposit that would
// overflow the balance.
func (a *Account) Deposit(amount float64) error {
	if !validAmount(amount) {
		return ErrInvalidAmount
	}
	if math.IsInf(a.balance+amount, 0) {
		return ErrBalanceOverflow
	}
	a.balance += amount
	return nil
}

// Withdraw subtracts amount from the balance if the balance covers it.
func (a *Account) Withdraw(amount float64) error {
	if !validAmount(amount) {
		return ErrInvalidAmount
	}
	if a.balance < amount {
		return ErrInsufficientFunds
	}
	a.balance -= amount
	return nil
}

// String renders the full account for display.
func (a *Account) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Account Number: %d\n", a.number)
	if a.customer != nil {
		fmt.Fprintf(&b, "Customer Name: %s\n", a.customer.name)
		fmt.Fprintf(&b, "Customer Address: %s\n", a.customer.address)
		fmt.Fprintf(&b, "Customer Contact: %s\n", a.customer.contact)
	}
	fmt.Fprintf(&b, "Balance: %s\n", FormatAmount(a.balance))
	return b.String()
}

// FormatAmount returns the shortest decimal representation that parses back
// to exactly f.
func FormatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func validAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 0)
}
