package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Insert(ctx context.Context, report *domain.Report) (int64, error) {
	query := `
	INSERT INTO reports (ticket_id, user_id, title, description, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING report_id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		report.TicketID, report.UserID, report.Title, report.Description,
		domain.ReportPending, report.CreatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *ReportRepository) GetByID(ctx context.Context, reportID int64) (*domain.Report, error) {
	query := `
	SELECT report_id, ticket_id, user_id, title, description, status,
		refund_amount, staff_note, processed_by, processed_at, created_at
	FROM reports
	WHERE report_id = $1
	`

	var report domain.Report
	var staffNote sql.NullString
	var processedBy sql.NullInt64
	var processedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, reportID).Scan(
		&report.ID,
		&report.TicketID,
		&report.UserID,
		&report.Title,
		&report.Description,
		&report.Status,
		&report.RefundAmount,
		&staffNote,
		&processedBy,
		&processedAt,
		&report.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	if staffNote.Valid {
		report.StaffNote = staffNote.String
	}

	if processedBy.Valid {
		report.ProcessedBy = &processedBy.Int64
	}

	if processedAt.Valid {
		report.ProcessedAt = &processedAt.Time
	}

	return &report, nil
}

func (r *ReportRepository) HasPendingForTicket(ctx context.Context, ticketID int64) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM reports WHERE ticket_id = $1 AND status = 'PENDING'
	)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, ticketID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *ReportRepository) IsTicketOwnedBy(ctx context.Context, ticketID, userID int64) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM tickets WHERE ticket_id = $1 AND user_id = $2
	)
	`

	var owned bool
	if err := r.db.QueryRowContext(ctx, query, ticketID, userID).Scan(&owned); err != nil {
		return false, err
	}

	return owned, nil
}

// Resolve processes one refund report in a single transaction. The report and
// its ticket are both locked before anything is decided, so two staff members
// resolving the same report serialize instead of double-crediting.
func (r *ReportRepository) Resolve(ctx context.Context, reportID, staffID int64, approve bool, staffNote string) (decimal.Decimal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}

	defer tx.Rollback()

	var ticketID int64
	var reportStatus domain.ReportStatus
	err = tx.QueryRowContext(ctx, `
	SELECT ticket_id, status
	FROM reports
	WHERE report_id = $1
	FOR UPDATE
	`, reportID).Scan(&ticketID, &reportStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, domain.ErrNotFound
		}

		return decimal.Zero, err
	}

	if reportStatus != domain.ReportPending {
		return decimal.Zero, fmt.Errorf("report already %s: %w", reportStatus, domain.ErrStateConflict)
	}

	var holderID, categoryID int64
	var ticketStatus domain.TicketStatus
	err = tx.QueryRowContext(ctx, `
	SELECT user_id, category_id, status
	FROM tickets
	WHERE ticket_id = $1
	FOR UPDATE
	`, ticketID).Scan(&holderID, &categoryID, &ticketStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, domain.ErrNotFound
		}

		return decimal.Zero, err
	}

	now := time.Now()

	if !approve {
		err = r.closeReport(ctx, tx, reportID, staffID, domain.ReportRejected, staffNote, decimal.NullDecimal{}, now)
		if err != nil {
			return decimal.Zero, err
		}

		return decimal.Zero, tx.Commit()
	}

	if ticketStatus != domain.TicketCheckedIn {
		return decimal.Zero, fmt.Errorf("ticket is %s, not %s: %w",
			ticketStatus, domain.TicketCheckedIn, domain.ErrStateConflict)
	}

	// Refund amount is the category price at resolution time, not at sale.
	var refund decimal.Decimal
	err = tx.QueryRowContext(ctx,
		`SELECT price FROM ticket_categories WHERE category_id = $1`, categoryID).Scan(&refund)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read category price: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
	UPDATE tickets
	SET status = $1
	WHERE ticket_id = $2 AND status = $3
	`, domain.TicketRefunded, ticketID, domain.TicketCheckedIn)
	if err != nil {
		return decimal.Zero, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return decimal.Zero, err
	}

	if affected == 0 {
		return decimal.Zero, domain.ErrStateConflict
	}

	result, err = tx.ExecContext(ctx, `
	UPDATE wallets
	SET balance = balance + $1, updated_at = $2
	WHERE user_id = $3
	`, refund, now, holderID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to credit wallet: %w", err)
	}

	affected, err = result.RowsAffected()
	if err != nil {
		return decimal.Zero, err
	}

	if affected == 0 {
		return decimal.Zero, fmt.Errorf("no wallet for user %d: %w", holderID, domain.ErrNotFound)
	}

	err = r.closeReport(ctx, tx, reportID, staffID, domain.ReportApproved, staffNote,
		decimal.NullDecimal{Decimal: refund, Valid: true}, now)
	if err != nil {
		return decimal.Zero, err
	}

	if err = tx.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit refund: %w", err)
	}

	return refund, nil
}

func (r *ReportRepository) closeReport(ctx context.Context, tx *sql.Tx, reportID, staffID int64, status domain.ReportStatus, note string, refund decimal.NullDecimal, at time.Time) error {
	_, err := tx.ExecContext(ctx, `
	UPDATE reports
	SET status = $1, processed_by = $2, processed_at = $3, staff_note = $4, refund_amount = $5
	WHERE report_id = $6
	`, status, staffID, at, note, refund, reportID)

	return err
}

func (r *ReportRepository) ListForStaff(ctx context.Context, status domain.ReportStatus) ([]domain.ReportListItem, error) {
	query := `
	SELECT rp.report_id, rp.ticket_id, rp.title, rp.status, rp.created_at,
		u.full_name, t.status, tc.name, tc.price
	FROM reports rp
	JOIN tickets t ON t.ticket_id = rp.ticket_id
	JOIN ticket_categories tc ON tc.category_id = t.category_id
	JOIN users u ON u.user_id = rp.user_id
	WHERE ($1 = '' OR rp.status = $1)
	ORDER BY rp.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var items []domain.ReportListItem
	for rows.Next() {
		var item domain.ReportListItem

		err := rows.Scan(
			&item.ReportID,
			&item.TicketID,
			&item.Title,
			&item.Status,
			&item.CreatedAt,
			&item.FilerName,
			&item.TicketStatus,
			&item.CategoryName,
			&item.Price,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}
