// Package console implements the interactive menu of the bank on top of a
// line oriented reader and writer.
package console

import (
	"bufio"
	goerrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/flow-hydraulics/flow-bank/accounts"
	"github.com/flow-hydraulics/flow-bank/bank"
	"github.com/flow-hydraulics/flow-bank/errors"
	log "github.com/sirupsen/logrus"
)

const menu = "1. Open Account\n" +
	"2. Perform Transactions\n" +
	"3. Save Account Details\n" +
	"4. Check Balance\n" +
	"5. Exit\n"

var errEndOfInput = goerrors.New("end of input")

type Console struct {
	bank *bank.Bank
	in   *bufio.Scanner
	out  io.Writer
}

func New(b *bank.Bank, in io.Reader, out io.Writer) *Console {
	return &Console{bank: b, in: bufio.NewScanner(in), out: out}
}

// Run shows the menu and executes commands until the user exits or the input
// ends. In both cases the bank is closed, which persists its state, and the
// error of that save is returned.
func (c *Console) Run() error {
	for {
		c.print(menu)

		choice, err := c.readLine()
		if err != nil {
			return c.exit()
		}

		switch choice {
		case "1":
			err = c.openAccount()
		case "2":
			err = c.transact()
		case "3":
			err = c.save()
		case "4":
			err = c.checkBalance()
		case "5":
			return c.exit()
		default:
			c.println("Invalid choice. Please try again.")
		}

		if goerrors.Is(err, errEndOfInput) {
			return c.exit()
		}
	}
}

func (c *Console) openAccount() error {
	name, err := c.prompt("Enter Customer Name: ")
	if err != nil {
		return err
	}
	address, err := c.prompt("Enter Customer Address: ")
	if err != nil {
		return err
	}
	contact, err := c.prompt("Enter Customer Contact: ")
	if err != nil {
		return err
	}
	number, ok, err := c.promptAccountNumber()
	if err != nil || !ok {
		return err
	}
	balance, ok, err := c.promptAmount("Enter Initial Balance: ")
	if err != nil || !ok {
		return err
	}

	if _, err := c.bank.OpenAccount(number, accounts.NewCustomer(name, address, contact), balance); err != nil {
		c.printError(err)
		return nil
	}

	c.println("Account opened successfully.")
	return nil
}

func (c *Console) transact() error {
	number, ok, err := c.promptAccountNumber()
	if err != nil || !ok {
		return err
	}

	if _, err := c.bank.FindAccount(number); err != nil {
		c.println("Account not found.")
		return nil
	}

	c.print("1. Deposit\n2. Withdraw\n")
	choice, err := c.readLine()
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		amount, ok, err := c.promptAmount("Enter Deposit Amount: ")
		if err != nil || !ok {
			return err
		}
		a, err := c.bank.Deposit(number, amount)
		if err != nil {
			c.printError(err)
			return nil
		}
		c.println("Amount deposited successfully. Current Balance: " + accounts.FormatAmount(a.Balance()))
	case "2":
		amount, ok, err := c.promptAmount("Enter Withdrawal Amount: ")
		if err != nil || !ok {
			return err
		}
		a, err := c.bank.Withdraw(number, amount)
		switch {
		case goerrors.Is(err, accounts.ErrInsufficientFunds):
			c.println("Insufficient funds. Cannot withdraw.")
		case err != nil:
			c.printError(err)
		default:
			c.println("Amount withdrawn successfully. Current Balance: " + accounts.FormatAmount(a.Balance()))
		}
	default:
		c.println("Invalid transaction choice.")
	}

	return nil
}

func (c *Console) save() error {
	path, err := c.prompt("Enter the filename to save account details: ")
	if err != nil {
		return err
	}
	if path == "" {
		c.println("Error: A filename is required.")
		return nil
	}

	if err := c.bank.SaveToFile(path); err != nil {
		c.println("Error: Unable to open the file for saving account details.")
		return nil
	}

	c.println("Account details saved to " + path)
	return nil
}

func (c *Console) checkBalance() error {
	number, ok, err := c.promptAccountNumber()
	if err != nil || !ok {
		return err
	}

	a, err := c.bank.FindAccount(number)
	if err != nil {
		c.println("Account not found.")
		return nil
	}

	c.println("Account Balance: " + accounts.FormatAmount(a.Balance()))
	return nil
}

func (c *Console) exit() error {
	c.println("Exiting...")

	if err := c.in.Err(); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Error reading input")
	}

	if err := c.bank.Close(); err != nil {
		if goerrors.Is(err, bank.ErrUnreadableStore) {
			c.println("Error: Stored account data could not be loaded and was left untouched.")
		} else {
			c.println("Error: Unable to save account details.")
		}
		return err
	}

	return nil
}

// promptAccountNumber reads an account number. ok is false when the input
// was not a number, in which case the user has already been told.
func (c *Console) promptAccountNumber() (n int64, ok bool, err error) {
	s, err := c.prompt("Enter Account Number: ")
	if err != nil {
		return 0, false, err
	}

	n, perr := strconv.ParseInt(s, 10, 64)
	if perr != nil {
		c.println("Error: Account number must be a number.")
		return 0, false, nil
	}

	return n, true, nil
}

func (c *Console) promptAmount(label string) (f float64, ok bool, err error) {
	s, err := c.prompt(label)
	if err != nil {
		return 0, false, err
	}

	f, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		c.println("Error: Amount must be a number.")
		return 0, false, nil
	}

	return f, true, nil
}

func (c *Console) prompt(label string) (string, error) {
	c.print(label)
	return c.readLine()
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		return "", errEndOfInput
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) printError(err error) {
	var ie *errors.InputError
	if goerrors.As(err, &ie) {
		err = ie.Err
	}
	c.println("Error: " + sentence(err.Error()))
}

func (c *Console) print(s string) {
	fmt.Fprint(c.out, s)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

// sentence capitalizes s and ends it with a period.
func sentence(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	s = string(unicode.ToUpper(r)) + s[size:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
