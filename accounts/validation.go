package accounts

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

const (
	AccountNumberDigits = 13
	ContactDigits       = 10

	minAccountNumber int64 = 1_000_000_000_000
	maxAccountNumber int64 = 9_999_999_999_999
)

var (
	ErrInvalidAccountNumber = errors.New("account number must have exactly 13 digits")
	ErrInvalidContact       = errors.New("customer contact must be exactly 10 digits and start with 6, 7, 8, or 9")
	ErrInvalidName          = errors.New("customer name must not contain line breaks or other control characters")
	ErrInvalidAddress       = errors.New("customer address must not contain line breaks or other control characters")
)

// ValidateAccountNumber checks that n is a non-negative number of exactly
// AccountNumberDigits decimal digits.
func ValidateAccountNumber(n int64) error {
	if n < minAccountNumber || n > maxAccountNumber {
		return ErrInvalidAccountNumber
	}
	return nil
}

// ValidateContact checks that contact is ContactDigits ASCII digits and
// starts with 6, 7, 8 or 9.
func ValidateContact(contact string) error {
	if len(contact) != ContactDigits {
		return ErrInvalidContact
	}
	switch contact[0] {
	case '6', '7', '8', '9':
	default:
		return ErrInvalidContact
	}
	for i := 1; i < len(contact); i++ {
		if contact[i] < '0' || contact[i] > '9' {
			return ErrInvalidContact
		}
	}
	return nil
}

// ValidateCustomer checks the fields of a new customer. Name and address
// must fit on a single line, the contact must pass ValidateContact.
func ValidateCustomer(c Customer) error {
	if hasControl(c.name) {
		return ErrInvalidName
	}
	if hasControl(c.address) {
		return ErrInvalidAddress
	}
	return ValidateContact(c.contact)
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// ValidateOpeningBalance checks an initial balance. Zero is allowed.
func ValidateOpeningBalance(balance float64) error {
	if balance < 0 || math.IsNaN(balance) || math.IsInf(balance, 0) {
		return ErrInvalidAmount
	}
	return nil
}
