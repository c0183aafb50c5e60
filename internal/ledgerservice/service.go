// Package ledgerservice manages the business logic layer of the account ledger.
package ledgerservice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/albko/bankledger/internal/domain"
	"github.com/albko/bankledger/pkg/errorspkg"
	"github.com/albko/bankledger/pkg/hashpkg"
)

// Repo provides the data access layer interface needed by the ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Get(ctx context.Context, number string) (domain.Account, error)
	Upsert(ctx context.Context, accounts ...domain.Account) error
	Delete(ctx context.Context, number string) error
	NextNumber(ctx context.Context) (string, error)
	NewPassword() string
}

// Service facilitates ledger service layer logic.
//
// One mutex serializes every operation, so a transfer's withdraw, deposit
// and save run as a single critical section and no caller observes a half
// applied transfer.
type Service struct {
	mu       sync.Mutex
	repo     Repo
	sessions map[uuid.UUID]string // session ID -> account number
}

// New returns a ledger service struct to manage ledger business logic.
func New(r Repo) *Service {
	return &Service{
		repo:     r,
		sessions: make(map[uuid.UUID]string),
	}
}

// CreateAccount creates an account of the given type with a zero balance
// and returns its number together with the plaintext password. This is
// the only time the password is observable.
func (s *Service) CreateAccount(ctx context.Context, accountType string) (string, string, error) {
	l := zerolog.Ctx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	number, err := s.repo.NextNumber(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return "", "", errorspkg.ErrInternal
	}

	password := s.repo.NewPassword()

	account := domain.Account{
		Number:       number,
		PasswordHash: hashpkg.Hash(password),
		Type:         accountType,
		Balance:      decimal.Zero,
	}

	if err := s.repo.Upsert(ctx, account); err != nil {
		l.Error().Err(err).Send()
		return "", "", errorspkg.ErrInternal
	}

	return number, password, nil
}

// Login checks the credentials and opens a session for the account.
// An unknown account number and a wrong password fail identically so the
// caller learns nothing about which accounts exist.
func (s *Service) Login(ctx context.Context, number, password string) (domain.Session, error) {
	l := zerolog.Ctx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.repo.Get(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Session{}, domain.ErrWrongPassword
		}

		l.Error().Err(err).Send()

		return domain.Session{}, errorspkg.ErrInternal
	}

	if err := hashpkg.Check(password, account.PasswordHash); err != nil {
		l.Warn().Str("account", number).Err(err).Send()
		return domain.Session{}, domain.ErrWrongPassword
	}

	session := domain.Session{
		ID:            uuid.New(),
		AccountNumber: number,
		CreatedAt:     time.Now(),
	}
	s.sessions[session.ID] = number

	return session, nil
}

// Logout closes the session.
func (s *Service) Logout(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return domain.ErrSessionNotFound
	}

	delete(s.sessions, session.ID)

	return nil
}

// Balance returns the current balance of the session's account.
func (s *Service) Balance(ctx context.Context, session domain.Session) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx, session)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return account.Balance, nil
}

// Deposit adds the amount to the session's account, persists the ledger
// and returns the new balance.
func (s *Service) Deposit(ctx context.Context, session domain.Session, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	value, err := parseAmount(ctx, amount)
	if err != nil {
		return decimal.Decimal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx, session)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if err := account.Deposit(value); err != nil {
		return decimal.Decimal{}, err
	}

	if err := s.repo.Upsert(ctx, account); err != nil {
		l.Error().Err(err).Send()
		return decimal.Decimal{}, errorspkg.ErrInternal
	}

	return account.Balance, nil
}

// Withdraw subtracts the amount from the session's account and returns
// the new balance. Nothing is persisted when the balance does not cover
// the amount.
func (s *Service) Withdraw(ctx context.Context, session domain.Session, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	value, err := parseAmount(ctx, amount)
	if err != nil {
		return decimal.Decimal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx, session)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if err := account.Withdraw(value); err != nil {
		return decimal.Decimal{}, err
	}

	if err := s.repo.Upsert(ctx, account); err != nil {
		l.Error().Err(err).Send()
		return decimal.Decimal{}, errorspkg.ErrInternal
	}

	return account.Balance, nil
}

// Transfer moves the amount from the session's account to the recipient
// and returns the sender's new balance. The debit and the credit are
// committed through a single ledger write so no reader ever observes one
// without the other. A failed transfer leaves both balances unchanged.
func (s *Service) Transfer(ctx context.Context, session domain.Session, toNumber, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	value, err := parseAmount(ctx, amount)
	if err != nil {
		return decimal.Decimal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.account(ctx, session)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if toNumber == from.Number {
		return decimal.Decimal{}, domain.ErrSelfTransfer
	}

	to, err := s.repo.Get(ctx, toNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return decimal.Decimal{}, domain.ErrRecipientNotFound
		}

		l.Error().Err(err).Send()

		return decimal.Decimal{}, errorspkg.ErrInternal
	}

	if err := from.Withdraw(value); err != nil {
		return decimal.Decimal{}, err
	}

	if err := to.Deposit(value); err != nil {
		return decimal.Decimal{}, err
	}

	if err := s.repo.Upsert(ctx, from, to); err != nil {
		l.Error().Err(err).Send()
		return decimal.Decimal{}, errorspkg.ErrInternal
	}

	return from.Balance, nil
}

// DeleteAccount removes the session's account from the ledger and closes
// the session. The account number is never reused.
func (s *Service) DeleteAccount(ctx context.Context, session domain.Session) error {
	l := zerolog.Ctx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx, session)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, account.Number); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}

		l.Error().Err(err).Send()

		return errorspkg.ErrInternal
	}

	delete(s.sessions, session.ID)

	return nil
}

// account resolves the session to its account. Callers must hold s.mu.
func (s *Service) account(ctx context.Context, session domain.Session) (domain.Account, error) {
	number, ok := s.sessions[session.ID]
	if !ok || number != session.AccountNumber {
		return domain.Account{}, domain.ErrSessionNotFound
	}

	return s.repo.Get(ctx, number)
}

func parseAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	value, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	return value, nil
}
