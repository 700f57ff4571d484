package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

// Postgres raises unique_violation when a ticket transition collides with the
// partial unique index over taken seats.
const uniqueViolation = "23505"

type BillRepository struct {
	db *sql.DB
}

func NewBillRepository(db *sql.DB) *BillRepository {
	return &BillRepository{db: db}
}

// SettleHolds runs the settlement transaction: every hold is promoted
// PENDING -> BOOKED, then the bill is written and attached to the tickets.
// Either all of it lands or none of it does.
func (r *BillRepository) SettleHolds(ctx context.Context, ticketIDs []int64, bill *domain.Bill, issuedAt time.Time) (int64, error) {
	return r.settle(ctx, ticketIDs, bill, issuedAt, false)
}

// SettleHoldsWithWallet is SettleHolds preceded by a guarded debit of the
// buyer's wallet inside the same transaction.
func (r *BillRepository) SettleHoldsWithWallet(ctx context.Context, ticketIDs []int64, bill *domain.Bill, issuedAt time.Time) (int64, error) {
	return r.settle(ctx, ticketIDs, bill, issuedAt, true)
}

func (r *BillRepository) settle(ctx context.Context, ticketIDs []int64, bill *domain.Bill, issuedAt time.Time, debitWallet bool) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	defer tx.Rollback()

	if debitWallet {
		// The balance guard lives in the WHERE clause, so a concurrent
		// spend can never drive the wallet negative.
		result, err := tx.ExecContext(ctx, `
		UPDATE wallets
		SET balance = balance - $1, updated_at = NOW()
		WHERE user_id = $2 AND balance >= $1
		`, bill.TotalAmount, bill.UserID)
		if err != nil {
			return 0, fmt.Errorf("failed to debit wallet: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}

		if affected == 0 {
			return 0, domain.ErrInsufficientFunds
		}
	}

	promote := `
	UPDATE tickets
	SET status = $1
	WHERE ticket_id = $2 AND status = $3
	`

	for _, ticketID := range ticketIDs {
		result, err := tx.ExecContext(ctx, promote, domain.TicketBooked, ticketID, domain.TicketPending)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return 0, fmt.Errorf("ticket %d: %w", ticketID, domain.ErrSeatTaken)
			}

			return 0, fmt.Errorf("failed to promote ticket %d: %w", ticketID, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}

		if affected == 0 {
			return 0, fmt.Errorf("ticket %d: %w", ticketID, domain.ErrStateConflict)
		}
	}

	var billID int64
	err = tx.QueryRowContext(ctx, `
	INSERT INTO bills (user_id, total_amount, currency, payment_method, payment_status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING bill_id
	`, bill.UserID, bill.TotalAmount, bill.Currency, bill.PaymentMethod, bill.PaymentStatus, bill.CreatedAt).Scan(&billID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert bill: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
	UPDATE tickets
	SET bill_id = $1, issued_at = $2
	WHERE ticket_id = ANY($3)
	`, billID, issuedAt, pq.Array(ticketIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to attach bill to tickets: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit settlement: %w", err)
	}

	return billID, nil
}
