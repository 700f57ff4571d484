package postgres

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

type WalletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT balance FROM wallets WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, domain.ErrNotFound
		}

		return decimal.Zero, err
	}

	return balance, nil
}
