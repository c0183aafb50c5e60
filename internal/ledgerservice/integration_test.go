package ledgerservice

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/albko/bankledger/internal/domain"
	"github.com/albko/bankledger/internal/ledgerrepo"
)

// The tests below run the service against a real backing file so the
// whole create, mutate, persist, reload cycle is covered.

func openService(t *testing.T, path string) *Service {
	t.Helper()

	repo, err := ledgerrepo.Open(path)
	require.NoError(t, err)

	return New(repo)
}

func requireBalance(t *testing.T, s *Service, session domain.Session, want string) {
	t.Helper()

	balance, err := s.Balance(context.Background(), session)
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString(want)),
		"balance = %s, want %s", balance, want)
}

func TestDepositSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "accounts.txt")

	service := openService(t, path)

	number, password, err := service.CreateAccount(ctx, "savings")
	require.NoError(t, err)
	require.NotEmpty(t, number)
	require.NotEmpty(t, password)

	session, err := service.Login(ctx, number, password)
	require.NoError(t, err)
	requireBalance(t, service, session, "0")

	balance, err := service.Deposit(ctx, session, "100.0")
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString("100")))

	// A fresh service over the same file sees the deposit.
	reloaded := openService(t, path)

	session, err = reloaded.Login(ctx, number, password)
	require.NoError(t, err)
	requireBalance(t, reloaded, session, "100")
}

func TestTransferMovesMoney(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "accounts.txt")

	service := openService(t, path)

	fromNumber, fromPassword, err := service.CreateAccount(ctx, "current")
	require.NoError(t, err)
	toNumber, toPassword, err := service.CreateAccount(ctx, "savings")
	require.NoError(t, err)

	fromSession, err := service.Login(ctx, fromNumber, fromPassword)
	require.NoError(t, err)

	_, err = service.Deposit(ctx, fromSession, "50.0")
	require.NoError(t, err)

	balance, err := service.Transfer(ctx, fromSession, toNumber, "30.0")
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString("20")))

	toSession, err := service.Login(ctx, toNumber, toPassword)
	require.NoError(t, err)
	requireBalance(t, service, toSession, "30")
}

func TestFailedTransferLeavesBalancesUnchanged(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "accounts.txt")

	service := openService(t, path)

	fromNumber, fromPassword, err := service.CreateAccount(ctx, "current")
	require.NoError(t, err)
	toNumber, toPassword, err := service.CreateAccount(ctx, "savings")
	require.NoError(t, err)

	fromSession, err := service.Login(ctx, fromNumber, fromPassword)
	require.NoError(t, err)

	_, err = service.Deposit(ctx, fromSession, "10.0")
	require.NoError(t, err)

	// Insufficient funds.
	_, err = service.Transfer(ctx, fromSession, toNumber, "50.0")
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	requireBalance(t, service, fromSession, "10")

	// Unknown recipient.
	_, err = service.Transfer(ctx, fromSession, "000000", "5.0")
	require.ErrorIs(t, err, domain.ErrRecipientNotFound)
	requireBalance(t, service, fromSession, "10")

	toSession, err := service.Login(ctx, toNumber, toPassword)
	require.NoError(t, err)
	requireBalance(t, service, toSession, "0")
}

func TestLoginRequiresExactPassword(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "accounts.txt")

	service := openService(t, path)

	number, password, err := service.CreateAccount(ctx, "savings")
	require.NoError(t, err)

	_, err = service.Login(ctx, number, password+"0")
	require.ErrorIs(t, err, domain.ErrWrongPassword)

	session, err := service.Login(ctx, number, password)
	require.NoError(t, err)
	requireBalance(t, service, session, "0")
}

func TestDeleteAccountIsPermanent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "accounts.txt")

	service := openService(t, path)

	number, password, err := service.CreateAccount(ctx, "savings")
	require.NoError(t, err)

	session, err := service.Login(ctx, number, password)
	require.NoError(t, err)

	require.NoError(t, service.DeleteAccount(ctx, session))

	_, err = service.Login(ctx, number, password)
	require.ErrorIs(t, err, domain.ErrWrongPassword)

	// The record is gone from the backing file as well.
	repo, err := ledgerrepo.Open(path)
	require.NoError(t, err)

	_, err = repo.Get(ctx, number)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
