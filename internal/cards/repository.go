package cards

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tellerdesk/tellerdesk/internal/platform/db"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// Repository provides PostgreSQL backed persistence for cards.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateCard inserts a new card. The card_number primary key carries the
// uniqueness guarantee.
func (r *Repository) CreateCard(ctx context.Context, c *Card) error {
	c.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cards (card_number, holder_name, balance, created_at)
VALUES ($1, $2, $3::numeric, $4)`,
		c.CardNumber, c.HolderName, c.Balance.String(), c.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrDuplicate
		}
		return err
	}
	return nil
}

// ListCards returns a snapshot of all cards.
func (r *Repository) ListCards(ctx context.Context) ([]Card, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT card_number, holder_name, balance::text, created_at FROM cards ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cards []Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// FindByNumber fetches a single card.
func (r *Repository) FindByNumber(ctx context.Context, cardNumber string) (*Card, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT card_number, holder_name, balance::text, created_at FROM cards WHERE card_number = $1`,
		cardNumber)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

func scanCard(row pgx.Row) (Card, error) {
	var (
		card    Card
		balance string
	)
	if err := row.Scan(&card.CardNumber, &card.HolderName, &balance, &card.CreatedAt); err != nil {
		return Card{}, err
	}
	parsed, err := decimal.NewFromString(balance)
	if err != nil {
		return Card{}, err
	}
	card.Balance = parsed
	return card, nil
}
