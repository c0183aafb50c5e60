package console

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/albko/bankledger/internal/ledgerrepo"
	"github.com/albko/bankledger/internal/ledgerservice"
)

func testService(t *testing.T) *ledgerservice.Service {
	t.Helper()

	repo, err := ledgerrepo.Open(filepath.Join(t.TempDir(), "accounts.txt"))
	require.NoError(t, err)

	return ledgerservice.New(repo)
}

func run(t *testing.T, service Service, input string) string {
	t.Helper()

	var out bytes.Buffer

	c := New(service, strings.NewReader(input), &out)
	require.NoError(t, c.Run(context.Background()))

	return out.String()
}

func TestRunCreateAndExit(t *testing.T) {
	service := testService(t)

	out := run(t, service, "1\nsavings\n3\n")
	require.Contains(t, out, "Account created. Account Number: ")
	require.Contains(t, out, ", Password: ")
}

func TestRunLoginDepositWithdraw(t *testing.T) {
	ctx := context.Background()
	service := testService(t)

	number, password, err := service.CreateAccount(ctx, "savings")
	require.NoError(t, err)

	input := strings.Join([]string{
		"2", number, password, // login
		"1", "100", // deposit
		"2", "40", // withdraw
		"2", "500", // withdraw too much
		"5", // logout
		"3", // exit
	}, "\n") + "\n"

	out := run(t, service, input)
	require.Contains(t, out, "Logged in as "+number+". Balance: 0")
	require.Contains(t, out, "Deposited 100. New balance: 100")
	require.Contains(t, out, "Withdrew 40. New balance: 60")
	require.Contains(t, out, "Insufficient funds.")
}

func TestRunLoginRejected(t *testing.T) {
	ctx := context.Background()
	service := testService(t)

	number, _, err := service.CreateAccount(ctx, "savings")
	require.NoError(t, err)

	out := run(t, service, "2\n"+number+"\nwrong\n3\n")
	require.Contains(t, out, "Invalid login credentials.")
	require.NotContains(t, out, "Logged in as")
}

func TestRunTransfer(t *testing.T) {
	ctx := context.Background()
	service := testService(t)

	fromNumber, fromPassword, err := service.CreateAccount(ctx, "current")
	require.NoError(t, err)
	toNumber, _, err := service.CreateAccount(ctx, "savings")
	require.NoError(t, err)

	input := strings.Join([]string{
		"2", fromNumber, fromPassword,
		"1", "50",
		"3", toNumber, "30",
		"3", "000000", "5",
		"5",
		"3",
	}, "\n") + "\n"

	out := run(t, service, input)
	require.Contains(t, out, "Transferred 30 to "+toNumber+". New balance: 20")
	require.Contains(t, out, "Receiving account does not exist.")
}

func TestRunDeleteAccount(t *testing.T) {
	ctx := context.Background()
	service := testService(t)

	number, password, err := service.CreateAccount(ctx, "savings")
	require.NoError(t, err)

	input := strings.Join([]string{
		"2", number, password,
		"4", // delete
		"2", number, password, // login again fails
		"3",
	}, "\n") + "\n"

	out := run(t, service, input)
	require.Contains(t, out, "Account deleted successfully.")
	require.Contains(t, out, "Invalid login credentials.")
}

func TestRunEndOfInput(t *testing.T) {
	service := testService(t)

	// Input ending mid-menu is not an error.
	out := run(t, service, "1\n")
	require.Contains(t, out, "Enter account type")
}
