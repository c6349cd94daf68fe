package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tellerdesk/tellerdesk/internal/platform/db"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// Repository encapsulates DB operations for the transaction ledger.
type Repository interface {
	// WithTx runs fn inside one database transaction. The balance mutation
	// and the log append must commit or roll back together.
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListByCard(ctx context.Context, cardNumber string) ([]Transaction, error)
	CardExists(ctx context.Context, cardNumber string) (bool, error)
}

// TxRepository exposes methods available within a transaction.
type TxRepository interface {
	// DebitCard atomically checks sufficiency and debits in one statement,
	// so two concurrent withdrawals can never both pass the check against
	// the same pre-debit balance.
	DebitCard(ctx context.Context, cardNumber string, amount decimal.Decimal) (decimal.Decimal, error)
	CreditCard(ctx context.Context, cardNumber string, amount decimal.Decimal) (decimal.Decimal, error)
	AppendTransaction(ctx context.Context, t *Transaction) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

func (r *repository) ListByCard(ctx context.Context, cardNumber string) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, card_number, amount::text, branch_id, type, created_at
FROM transactions WHERE card_number = $1 ORDER BY created_at DESC`, cardNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var transactions []Transaction
	for rows.Next() {
		var (
			t      Transaction
			amount string
		)
		if err := rows.Scan(&t.ID, &t.CardNumber, &amount, &t.BranchID, &t.Type, &t.Timestamp); err != nil {
			return nil, err
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *repository) CardExists(ctx context.Context, cardNumber string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cards WHERE card_number = $1)`, cardNumber).Scan(&exists)
	return exists, err
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) DebitCard(ctx context.Context, cardNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance string
	err := r.tx.QueryRow(ctx,
		`UPDATE cards SET balance = balance - $1::numeric
WHERE card_number = $2 AND balance >= $1::numeric
RETURNING balance::text`,
		amount.String(), cardNumber).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, r.classifyMiss(ctx, cardNumber)
		}
		return decimal.Zero, err
	}
	return decimal.NewFromString(balance)
}

func (r *txRepository) CreditCard(ctx context.Context, cardNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance string
	err := r.tx.QueryRow(ctx,
		`UPDATE cards SET balance = balance + $1::numeric WHERE card_number = $2
RETURNING balance::text`,
		amount.String(), cardNumber).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, shared.ErrNotFound
		}
		return decimal.Zero, err
	}
	return decimal.NewFromString(balance)
}

// classifyMiss distinguishes a missing card from an insufficient balance when
// the conditional debit matched no row.
func (r *txRepository) classifyMiss(ctx context.Context, cardNumber string) error {
	var exists bool
	if err := r.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cards WHERE card_number = $1)`, cardNumber).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}
	return shared.ErrInsufficientBalance
}

func (r *txRepository) AppendTransaction(ctx context.Context, t *Transaction) error {
	_, err := r.tx.Exec(ctx,
		`INSERT INTO transactions (id, card_number, amount, branch_id, type, created_at)
VALUES ($1, $2, $3::numeric, $4, $5, $6)`,
		t.ID, t.CardNumber, t.Amount.String(), t.BranchID, t.Type, t.Timestamp)
	return err
}
