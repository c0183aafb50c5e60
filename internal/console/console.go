// Package console implements the interactive menu front end of the ledger.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/albko/bankledger/internal/domain"
)

// Service provides the ledger operations the console drives. The console
// never touches the backing file itself.
type Service interface {
	CreateAccount(ctx context.Context, accountType string) (string, string, error)
	Login(ctx context.Context, number, password string) (domain.Session, error)
	Logout(ctx context.Context, session domain.Session) error
	Balance(ctx context.Context, session domain.Session) (decimal.Decimal, error)
	Deposit(ctx context.Context, session domain.Session, amount string) (decimal.Decimal, error)
	Withdraw(ctx context.Context, session domain.Session, amount string) (decimal.Decimal, error)
	Transfer(ctx context.Context, session domain.Session, toNumber, amount string) (decimal.Decimal, error)
	DeleteAccount(ctx context.Context, session domain.Session) error
}

// Console runs the interactive menu over the ledger service.
type Console struct {
	service Service
	in      *bufio.Scanner
	out     io.Writer
}

// New returns a console that reads commands from in and writes to out.
func New(s Service, in io.Reader, out io.Writer) *Console {
	return &Console{
		service: s,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run drives the menu loop until the user exits or the input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		c.printf("\n1. Create Account\n2. Login\n3. Exit\n")

		choice, ok := c.prompt("Choose an option: ")
		if !ok {
			return c.in.Err()
		}

		switch choice {
		case "1":
			if !c.createAccount(ctx) {
				return c.in.Err()
			}
		case "2":
			if !c.login(ctx) {
				return c.in.Err()
			}
		case "3":
			return nil
		default:
			c.printf("Invalid choice.\n")
		}
	}
}

// createAccount reports false when the input ends.
func (c *Console) createAccount(ctx context.Context) bool {
	accountType, ok := c.prompt("Enter account type (savings/current): ")
	if !ok {
		return false
	}

	number, password, err := c.service.CreateAccount(ctx, accountType)
	if err != nil {
		c.printf("Could not create account: %v\n", err)
		return true
	}

	c.printf("Account created. Account Number: %s, Password: %s\n", number, password)

	return true
}

// login authenticates and, on success, runs the session menu. It reports
// false when the input ends.
func (c *Console) login(ctx context.Context) bool {
	number, ok := c.prompt("Enter account number: ")
	if !ok {
		return false
	}

	password, ok := c.prompt("Enter password: ")
	if !ok {
		return false
	}

	session, err := c.service.Login(ctx, number, password)
	if err != nil {
		c.printf("Invalid login credentials.\n")
		return true
	}

	balance, err := c.service.Balance(ctx, session)
	if err != nil {
		c.printf("Error: %v\n", err)
		return true
	}

	c.printf("Logged in as %s. Balance: %s\n", number, balance)

	return c.session(ctx, session)
}

func (c *Console) session(ctx context.Context, session domain.Session) bool {
	for {
		c.printf("\n1. Deposit\n2. Withdraw\n3. Transfer\n4. Delete Account\n5. Logout\n")

		action, ok := c.prompt("Choose an action: ")
		if !ok {
			return false
		}

		switch action {
		case "1":
			amount, ok := c.prompt("Enter amount to deposit: ")
			if !ok {
				return false
			}

			balance, err := c.service.Deposit(ctx, session, amount)
			if err != nil {
				c.report(err)
				continue
			}

			c.printf("Deposited %s. New balance: %s\n", amount, balance)
		case "2":
			amount, ok := c.prompt("Enter amount to withdraw: ")
			if !ok {
				return false
			}

			balance, err := c.service.Withdraw(ctx, session, amount)
			if err != nil {
				c.report(err)
				continue
			}

			c.printf("Withdrew %s. New balance: %s\n", amount, balance)
		case "3":
			toNumber, ok := c.prompt("Enter recipient account number: ")
			if !ok {
				return false
			}

			amount, ok := c.prompt("Enter amount to transfer: ")
			if !ok {
				return false
			}

			balance, err := c.service.Transfer(ctx, session, toNumber, amount)
			if err != nil {
				c.report(err)
				continue
			}

			c.printf("Transferred %s to %s. New balance: %s\n", amount, toNumber, balance)
		case "4":
			if err := c.service.DeleteAccount(ctx, session); err != nil {
				c.printf("Failed to delete account: %v\n", err)
				continue
			}

			c.printf("Account deleted successfully.\n")

			return true
		case "5":
			if err := c.service.Logout(ctx, session); err != nil {
				c.printf("Error: %v\n", err)
			}

			return true
		default:
			c.printf("Invalid choice.\n")
		}
	}
}

// prompt prints the label and reads one line. It reports false when the
// input ends.
func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)

	if !c.in.Scan() {
		return "", false
	}

	return c.in.Text(), true
}

func (c *Console) report(err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		c.printf("Insufficient funds.\n")
	case errors.Is(err, domain.ErrRecipientNotFound):
		c.printf("Receiving account does not exist.\n")
	default:
		c.printf("Error: %v\n", err)
	}
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}
