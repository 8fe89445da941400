package repositories

import (
	"context"
	"errors"

	"cryptofolio/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldingRepository interface {
	GetByUserID(ctx context.Context, userID int) ([]models.Holding, error)
	GetByCoinID(ctx context.Context, userID int, coinID string) (*models.Holding, error)
	ListCoinIDs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, h *models.Holding) error
	Update(ctx context.Context, h *models.Holding) error
	Delete(ctx context.Context, id int) error
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

const holdingColumns = `id, user_id, coin_id, coin_symbol, coin_name, amount, avg_price, opened_at, notes, created_at`

func (r *holdingRepo) GetByUserID(ctx context.Context, userID int) ([]models.Holding, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+holdingColumns+` FROM holdings WHERE user_id = $1 ORDER BY coin_name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ID, &h.UserID, &h.CoinID, &h.CoinSymbol, &h.CoinName, &h.Amount, &h.AvgPrice, &h.OpenedAt, &h.Notes, &h.CreatedAt); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// GetByCoinID returns nil without error when the user holds no position in
// the coin.
func (r *holdingRepo) GetByCoinID(ctx context.Context, userID int, coinID string) (*models.Holding, error) {
	var h models.Holding
	err := r.db.QueryRow(ctx,
		`SELECT `+holdingColumns+` FROM holdings WHERE user_id = $1 AND coin_id = $2`,
		userID, coinID,
	).Scan(&h.ID, &h.UserID, &h.CoinID, &h.CoinSymbol, &h.CoinName, &h.Amount, &h.AvgPrice, &h.OpenedAt, &h.Notes, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListCoinIDs returns every coin currently held by any user, for the
// periodic price cache warmup.
func (r *holdingRepo) ListCoinIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT coin_id FROM holdings ORDER BY coin_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coinIDs []string
	for rows.Next() {
		var coinID string
		if err := rows.Scan(&coinID); err != nil {
			return nil, err
		}
		coinIDs = append(coinIDs, coinID)
	}
	return coinIDs, rows.Err()
}

func (r *holdingRepo) Create(ctx context.Context, h *models.Holding) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO holdings (user_id, coin_id, coin_symbol, coin_name, amount, avg_price, opened_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		h.UserID, h.CoinID, h.CoinSymbol, h.CoinName, h.Amount, h.AvgPrice, h.OpenedAt, h.Notes,
	).Scan(&h.ID, &h.CreatedAt)
}

func (r *holdingRepo) Update(ctx context.Context, h *models.Holding) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE holdings SET amount = $1, avg_price = $2, notes = $3
		WHERE id = $4`,
		h.Amount, h.AvgPrice, h.Notes, h.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *holdingRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM holdings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
