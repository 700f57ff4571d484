package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

type TicketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) InsertPending(ctx context.Context, holds []domain.Ticket) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer tx.Rollback()

	query := `
	INSERT INTO tickets (event_id, user_id, category_id, seat_id, admission_code, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ticket_id
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare hold statement: %w", err)
	}

	defer stmt.Close()

	ids := make([]int64, 0, len(holds))
	for _, hold := range holds {
		var id int64
		err := stmt.QueryRowContext(ctx, hold.EventID, hold.UserID, hold.CategoryID, hold.SeatID,
			domain.PlaceholderAdmissionCode, domain.TicketPending).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to insert hold for seat %d: %w", hold.SeatID, err)
		}

		ids = append(ids, id)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit holds: %w", err)
	}

	return ids, nil
}

func (r *TicketRepository) FindByIDs(ctx context.Context, ticketIDs []int64) ([]domain.Ticket, error) {
	query := `
	SELECT ticket_id, event_id, user_id, category_id, seat_id, bill_id, admission_code, issued_at, status, checkin_time, checkout_time
	FROM tickets
	WHERE ticket_id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ticketIDs))
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, *ticket)
	}

	return tickets, rows.Err()
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	query := `
	SELECT ticket_id, event_id, user_id, category_id, seat_id, bill_id, admission_code, issued_at, status, checkin_time, checkout_time
	FROM tickets
	WHERE ticket_id = $1
	`

	ticket, err := scanTicket(r.db.QueryRowContext(ctx, query, ticketID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepository) DeleteByIDs(ctx context.Context, ticketIDs []int64) error {
	if len(ticketIDs) == 0 {
		return nil
	}

	_, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE ticket_id = ANY($1)`, pq.Array(ticketIDs))

	return err
}

func (r *TicketRepository) TakenSeatIDs(ctx context.Context, eventID int64, seatIDs []int64) ([]int64, error) {
	query := `
	SELECT DISTINCT seat_id
	FROM tickets
	WHERE event_id = $1 AND seat_id = ANY($2) AND status <> 'CANCELLED'
	`

	rows, err := r.db.QueryContext(ctx, query, eventID, pq.Array(seatIDs))
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var taken []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		taken = append(taken, id)
	}

	return taken, rows.Err()
}

func (r *TicketRepository) SoldCountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	query := `
	SELECT COUNT(*)
	FROM tickets
	WHERE category_id = $1 AND status <> 'CANCELLED'
	`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *TicketRepository) CheckIn(ctx context.Context, ticketID int64, at time.Time) error {
	query := `
	UPDATE tickets
	SET status = $1, checkin_time = $2
	WHERE ticket_id = $3 AND status = $4
	`

	return r.transition(ctx, query, domain.TicketCheckedIn, at, ticketID, domain.TicketBooked)
}

func (r *TicketRepository) CheckOut(ctx context.Context, ticketID int64, at time.Time) error {
	query := `
	UPDATE tickets
	SET status = $1, checkout_time = $2
	WHERE ticket_id = $3 AND status = $4
	`

	return r.transition(ctx, query, domain.TicketCheckedOut, at, ticketID, domain.TicketCheckedIn)
}

// transition runs a guarded status update. The WHERE clause carries the
// required current status, so RowsAffected is the whole race detector: zero
// rows means the ticket was never in that status or a rival got there first.
func (r *TicketRepository) transition(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrStateConflict
	}

	return nil
}

func (r *TicketRepository) SetAdmissionCode(ctx context.Context, ticketID int64, code string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET admission_code = $1 WHERE ticket_id = $2`, code, ticketID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var billID sql.NullInt64
	var issuedAt, checkin, checkout sql.NullTime

	err := row.Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.UserID,
		&ticket.CategoryID,
		&ticket.SeatID,
		&billID,
		&ticket.AdmissionCode,
		&issuedAt,
		&ticket.Status,
		&checkin,
		&checkout,
	)

	if err != nil {
		return nil, err
	}

	if billID.Valid {
		ticket.BillID = &billID.Int64
	}

	if issuedAt.Valid {
		ticket.IssuedAt = &issuedAt.Time
	}

	if checkin.Valid {
		ticket.CheckinTime = &checkin.Time
	}

	if checkout.Valid {
		ticket.CheckoutTime = &checkout.Time
	}

	return &ticket, nil
}
