// Package domain provides definitions of all entities.
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrRecipientNotFound indicates that the transfer recipient account is not found.
	ErrRecipientNotFound = errors.New("recipient account not found")
	// ErrSelfTransfer indicates a transfer where sender and recipient are the same account.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrWrongPassword indicates the wrong credentials for the given account.
	ErrWrongPassword = errors.New("wrong account number or password")
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates a zero or negative amount.
	ErrNegativeAmount = errors.New("amount must be positive")
)

// Account holds one ledger account. The plaintext password is never
// stored, only its digest.
type Account struct {
	Number       string
	PasswordHash string
	Type         string
	Balance      decimal.Decimal
}

// Deposit adds the amount to the account balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrNegativeAmount
	}

	a.Balance = a.Balance.Add(amount)

	return nil
}

// Withdraw subtracts the amount from the account balance. The balance is
// left unchanged if it does not cover the amount.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrNegativeAmount
	}

	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	a.Balance = a.Balance.Sub(amount)

	return nil
}
