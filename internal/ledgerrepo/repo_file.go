// Package ledgerrepo manages the repository layer of ledger accounts
// backed by a line oriented record file.
package ledgerrepo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/albko/bankledger/internal/domain"
	"github.com/albko/bankledger/pkg/randompkg"
)

// ErrNumbersExhausted indicates that no free account number could be drawn.
var ErrNumbersExhausted = errors.New("no free account numbers")

const maxNumberDraws = 1000

// RepoFile facilitates the account repository layer logic over a plain
// text backing file. Every mutating call rewrites the whole file; at the
// scale of a local ledger this beats the bookkeeping of an incremental
// format.
//
// RepoFile is not safe for concurrent use. The service layer serializes
// all access behind a single lock.
type RepoFile struct {
	path     string
	accounts map[string]domain.Account
}

// Open loads the ledger from the file at path. A missing file is a first
// run and yields an empty ledger. A record that does not decode aborts
// the load with ErrMalformedRecord.
func Open(path string) (*RepoFile, error) {
	r := &RepoFile{
		path:     path,
		accounts: make(map[string]domain.Account),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}

		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	line := 0
	for scanner.Scan() {
		line++

		text := scanner.Text()
		if text == "" {
			continue
		}

		account, err := parseAccount(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}

		r.accounts[account.Number] = account
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	return r, nil
}

// save rewrites the whole backing file, one record per account. The
// records go to a temp file first and replace the old ledger in one
// rename so a failed write never truncates it.
func (r *RepoFile) save() error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	for _, account := range r.accounts {
		if _, err := fmt.Fprintln(tmp, marshalAccount(account)); err != nil {
			tmp.Close()
			return fmt.Errorf("write ledger file: %w", err)
		}
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp ledger file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}

	return nil
}

// Get returns the account with the given number.
func (r *RepoFile) Get(ctx context.Context, number string) (domain.Account, error) {
	account, ok := r.accounts[number]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return account, nil
}

// Upsert stores the given accounts and persists the whole ledger once.
// The accounts are committed together or not at all: on a write failure
// the in-memory state is rolled back to match the file.
func (r *RepoFile) Upsert(ctx context.Context, accounts ...domain.Account) error {
	l := zerolog.Ctx(ctx)

	previous := make(map[string]domain.Account, len(accounts))
	existed := make(map[string]bool, len(accounts))

	for _, account := range accounts {
		if old, ok := r.accounts[account.Number]; ok {
			previous[account.Number] = old
			existed[account.Number] = true
		}

		r.accounts[account.Number] = account
	}

	if err := r.save(); err != nil {
		l.Error().Err(err).Send()

		for _, account := range accounts {
			if existed[account.Number] {
				r.accounts[account.Number] = previous[account.Number]
			} else {
				delete(r.accounts, account.Number)
			}
		}

		return err
	}

	return nil
}

// Delete removes the account with the given number and persists the ledger.
func (r *RepoFile) Delete(ctx context.Context, number string) error {
	l := zerolog.Ctx(ctx)

	account, ok := r.accounts[number]
	if !ok {
		return domain.ErrAccountNotFound
	}

	delete(r.accounts, number)

	if err := r.save(); err != nil {
		l.Error().Err(err).Send()
		r.accounts[number] = account

		return err
	}

	return nil
}

// NextNumber draws a fresh account number that is not in use yet.
func (r *RepoFile) NextNumber(ctx context.Context) (string, error) {
	for i := 0; i < maxNumberDraws; i++ {
		number := randompkg.AccountNumber()
		if _, ok := r.accounts[number]; !ok {
			return number, nil
		}
	}

	return "", ErrNumbersExhausted
}

// NewPassword draws a fresh plaintext password for a new account. It is
// handed to the caller exactly once and never persisted.
func (r *RepoFile) NewPassword() string {
	return randompkg.Password()
}
