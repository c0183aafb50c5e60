package ledgerrepo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/albko/bankledger/internal/domain"
)

// ErrMalformedRecord indicates that a persisted account record cannot be decoded.
var ErrMalformedRecord = errors.New("malformed account record")

const recordFields = 4

// marshalAccount encodes the account as one comma separated line:
// number, password digest, account type, balance. None of the fields may
// contain the delimiter; the number and password generators only emit
// digits and the digest is hex.
func marshalAccount(a domain.Account) string {
	return strings.Join([]string{a.Number, a.PasswordHash, a.Type, a.Balance.String()}, ",")
}

// parseAccount is the exact inverse of marshalAccount.
func parseAccount(line string) (domain.Account, error) {
	fields := strings.Split(line, ",")
	if len(fields) != recordFields {
		return domain.Account{}, fmt.Errorf("%w: got %d fields, want %d", ErrMalformedRecord, len(fields), recordFields)
	}

	balance, err := decimal.NewFromString(fields[3])
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: balance %q is not a decimal", ErrMalformedRecord, fields[3])
	}

	return domain.Account{
		Number:       fields[0],
		PasswordHash: fields[1],
		Type:         fields[2],
		Balance:      balance,
	}, nil
}
