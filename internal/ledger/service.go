package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tellerdesk/tellerdesk/internal/platform/db"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// BranchDirectory validates transaction branch references.
type BranchDirectory interface {
	Exists(ctx context.Context, branchID string) (bool, error)
}

// CardCache is notified after committed balance mutations.
type CardCache interface {
	Invalidate(ctx context.Context)
}

// Service processes withdrawals and deposits against card balances.
type Service struct {
	repo     Repository
	branches BranchDirectory
	cache    CardCache
	now      func() time.Time
}

// NewService constructs a new Service. cache may be nil.
func NewService(repo Repository, branches BranchDirectory, cache CardCache) *Service {
	return &Service{repo: repo, branches: branches, cache: cache, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Withdraw debits a card and appends a withdrawal record as one unit.
func (s *Service) Withdraw(ctx context.Context, actor Actor, cardNumber string, amount decimal.Decimal, branchID string) (*Receipt, error) {
	if !shared.HasPermission(actor.Permissions, shared.PermProcessWithdrawal) {
		return nil, shared.ErrPermissionDenied
	}
	return s.process(ctx, TypeWithdrawal, cardNumber, amount, branchID)
}

// Deposit credits a card and appends a deposit record as one unit.
func (s *Service) Deposit(ctx context.Context, actor Actor, cardNumber string, amount decimal.Decimal, branchID string) (*Receipt, error) {
	if !shared.HasPermission(actor.Permissions, shared.PermProcessDeposit) {
		return nil, shared.ErrPermissionDenied
	}
	return s.process(ctx, TypeDeposit, cardNumber, amount, branchID)
}

// ListByCard returns the transaction history for a card.
func (s *Service) ListByCard(ctx context.Context, cardNumber string) ([]Transaction, error) {
	exists, err := s.repo.CardExists(ctx, cardNumber)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}
	return s.repo.ListByCard(ctx, cardNumber)
}

func (s *Service) process(ctx context.Context, txType Type, cardNumber string, amount decimal.Decimal, branchID string) (*Receipt, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	known, err := s.branches.Exists(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, shared.ErrBranchUnknown
	}

	receipt, err := s.commit(ctx, txType, cardNumber, amount, branchID)
	if db.IsSerializationFailure(err) {
		// One bounded retry; a second conflict surfaces to the caller.
		receipt, err = s.commit(ctx, txType, cardNumber, amount, branchID)
	}
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return receipt, nil
}

func (s *Service) commit(ctx context.Context, txType Type, cardNumber string, amount decimal.Decimal, branchID string) (*Receipt, error) {
	var receipt Receipt
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var (
			balance decimal.Decimal
			err     error
		)
		switch txType {
		case TypeWithdrawal:
			balance, err = tx.DebitCard(ctx, cardNumber, amount)
		case TypeDeposit:
			balance, err = tx.CreditCard(ctx, cardNumber, amount)
		default:
			return fmt.Errorf("ledger: unsupported transaction type %q", txType)
		}
		if err != nil {
			return err
		}
		record := Transaction{
			ID:         uuid.New(),
			CardNumber: cardNumber,
			Amount:     amount,
			BranchID:   branchID,
			Type:       txType,
			Timestamp:  s.now().UTC(),
		}
		if err := tx.AppendTransaction(ctx, &record); err != nil {
			return err
		}
		receipt = Receipt{NewBalance: balance, TransactionID: record.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}
