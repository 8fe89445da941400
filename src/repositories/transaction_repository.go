package repositories

import (
	"context"
	"errors"

	"cryptofolio/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository interface {
	GetByUserID(ctx context.Context, userID int) ([]models.Transaction, error)
	GetByCoinID(ctx context.Context, userID int, coinID string) ([]models.Transaction, error)
	GetByID(ctx context.Context, id int) (*models.Transaction, error)
	Create(ctx context.Context, t *models.Transaction) error
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, id int) error
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

const transactionColumns = `id, user_id, coin_id, coin_symbol, coin_name, type, amount, price, date, notes, created_at`

func (r *transactionRepo) GetByUserID(ctx context.Context, userID int) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetByCoinID returns the full history for one (user, coin) pair, ordered
// oldest first. Ties on date keep insertion (id) order so replay is stable.
func (r *transactionRepo) GetByCoinID(ctx context.Context, userID int, coinID string) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 AND coin_id = $2 ORDER BY date ASC, id ASC`,
		userID, coinID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *transactionRepo) GetByID(ctx context.Context, id int) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id,
	).Scan(&t.ID, &t.UserID, &t.CoinID, &t.CoinSymbol, &t.CoinName, &t.Type, &t.Amount, &t.Price, &t.Date, &t.Notes, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO transactions (user_id, coin_id, coin_symbol, coin_name, type, amount, price, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		t.UserID, t.CoinID, t.CoinSymbol, t.CoinName, t.Type, t.Amount, t.Price, t.Date, t.Notes,
	).Scan(&t.ID, &t.CreatedAt)
}

// Update replaces the mutable attributes only. The owning user and coin of
// a transaction never change.
func (r *transactionRepo) Update(ctx context.Context, t *models.Transaction) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE transactions SET type = $1, amount = $2, price = $3, date = $4, notes = $5
		WHERE id = $6`,
		t.Type, t.Amount, t.Price, t.Date, t.Notes, t.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *transactionRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.CoinID, &t.CoinSymbol, &t.CoinName, &t.Type, &t.Amount, &t.Price, &t.Date, &t.Notes, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
