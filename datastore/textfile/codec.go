// Package textfile stores bank state in a line oriented plain text file.
//
// Every account is written as one block of labelled lines followed by a
// blank line:
//
//	Customer Name: Asha
//	Customer Address: 12 Oak St
//	Customer Contact: 9876543210
//	Account Number: 1234567890123
//	Balance: 500
//
// Reading splits each line at its first colon. The label is trimmed, the
// value only loses the single space written after the colon, so customer
// fields keep their surrounding whitespace. Labels may appear in any order
// within a block. Lines starting with '#' are ignored.
//
// Decoded records are validated: account numbers must be valid and unique
// and contacts must be valid.
package textfile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/flow-hydraulics/flow-bank/accounts"
	"github.com/flow-hydraulics/flow-bank/datastore"
)

const (
	labelName    = "Customer Name"
	labelAddress = "Customer Address"
	labelContact = "Customer Contact"
	labelNumber  = "Account Number"
	labelBalance = "Balance"
)

// ParseError reports a malformed line or block.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Encode writes one block per account in the given order.
func Encode(w io.Writer, aa []*accounts.Account) error {
	bw := bufio.NewWriter(w)
	for _, a := range aa {
		c := a.Customer()
		if c == nil {
			return fmt.Errorf("account %d has no customer", a.Number())
		}
		if strings.ContainsAny(c.Name()+c.Address()+c.Contact(), "\r\n") {
			return fmt.Errorf("account %d: customer fields must not contain line breaks", a.Number())
		}
		fmt.Fprintf(bw, "%s: %s\n", labelName, c.Name())
		fmt.Fprintf(bw, "%s: %s\n", labelAddress, c.Address())
		fmt.Fprintf(bw, "%s: %s\n", labelContact, c.Contact())
		fmt.Fprintf(bw, "%s: %d\n", labelNumber, a.Number())
		fmt.Fprintf(bw, "%s: %s\n", labelBalance, accounts.FormatAmount(a.Balance()))
		bw.WriteString("\n") // nolint
	}
	return bw.Flush()
}

type block struct {
	start   int
	seen    map[string]int
	name    string
	address string
	contact string
	number  int64
	balance float64
}

func (b *block) empty() bool {
	return len(b.seen) == 0
}

func (b *block) set(line int, key, value string) error {
	if b.seen == nil {
		b.seen = make(map[string]int, 5)
		b.start = line
	}
	if _, ok := b.seen[key]; ok {
		return &ParseError{Line: line, Msg: fmt.Sprintf("duplicate %q in block", key)}
	}

	switch key {
	case labelName:
		b.name = value
	case labelAddress:
		b.address = value
	case labelContact:
		b.contact = value
	case labelNumber:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return &ParseError{Line: line, Msg: fmt.Sprintf("invalid account number %q", value)}
		}
		b.number = n
	case labelBalance:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return &ParseError{Line: line, Msg: fmt.Sprintf("invalid balance %q", value)}
		}
		b.balance = f
	default:
		return &ParseError{Line: line, Msg: fmt.Sprintf("unknown label %q", key)}
	}

	b.seen[key] = line
	return nil
}

func (b *block) complete() error {
	for _, label := range []string{labelName, labelAddress, labelContact, labelNumber, labelBalance} {
		if _, ok := b.seen[label]; !ok {
			return &ParseError{Line: b.start, Msg: fmt.Sprintf("block is missing %q", label)}
		}
	}

	if err := accounts.ValidateAccountNumber(b.number); err != nil {
		return &ParseError{Line: b.seen[labelNumber], Msg: err.Error()}
	}
	if err := accounts.ValidateContact(b.contact); err != nil {
		return &ParseError{Line: b.seen[labelContact], Msg: err.Error()}
	}

	return nil
}

// Decode reads blocks written by Encode. Customers are deduplicated by name,
// the first block naming a customer provides its record.
func Decode(r io.Reader) (datastore.Snapshot, error) {
	var (
		snap    datastore.Snapshot
		cur     block
		lineNo  int
		numbers = make(map[int64]int)
	)

	flush := func() error {
		if cur.empty() {
			return nil
		}
		if err := cur.complete(); err != nil {
			return err
		}
		if first, ok := numbers[cur.number]; ok {
			return &ParseError{
				Line: cur.seen[labelNumber],
				Msg:  fmt.Sprintf("account number %d already used on line %d", cur.number, first),
			}
		}
		numbers[cur.number] = cur.seen[labelNumber]
		snap.AddAccount(cur.number, accounts.NewCustomer(cur.name, cur.address, cur.contact), cur.balance)
		cur = block{}
		return nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return datastore.Snapshot{}, err
			}
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return datastore.Snapshot{}, &ParseError{Line: lineNo, Msg: "expected a \"label: value\" line"}
		}

		if err := cur.set(lineNo, strings.TrimSpace(key), strings.TrimPrefix(value, " ")); err != nil {
			return datastore.Snapshot{}, err
		}
	}

	if err := sc.Err(); err != nil {
		return datastore.Snapshot{}, err
	}

	if err := flush(); err != nil {
		return datastore.Snapshot{}, err
	}

	return snap, nil
}
