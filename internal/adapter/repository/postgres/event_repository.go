package postgres

import (
	"context"
	"database/sql"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetEventByID(ctx context.Context, eventID int64) (*domain.Event, error) {
	query := `
	SELECT event_id, title, status, area_id, start_time, end_time
	FROM events
	WHERE event_id = $1
	`

	var event domain.Event
	var areaID sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, eventID).Scan(
		&event.ID,
		&event.Title,
		&event.Status,
		&areaID,
		&event.StartTime,
		&event.EndTime,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	if areaID.Valid {
		event.AreaID = &areaID.Int64
	}

	return &event, nil
}

func (r *EventRepository) SeatForEvent(ctx context.Context, eventID, seatID int64) (*domain.EventSeat, error) {
	query := `
	SELECT s.seat_id, s.seat_code, s.area_id, s.seat_type, s.status
	FROM seats s
	JOIN events e ON e.area_id = s.area_id
	WHERE e.event_id = $1 AND s.seat_id = $2
	`

	var seat domain.EventSeat
	err := r.db.QueryRowContext(ctx, query, eventID, seatID).Scan(
		&seat.SeatID,
		&seat.SeatCode,
		&seat.AreaID,
		&seat.SeatType,
		&seat.Status,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return &seat, nil
}

func (r *EventRepository) SeatsWithAvailability(ctx context.Context, eventID int64) ([]domain.SeatAvailability, error) {
	query := `
	SELECT s.seat_id, s.seat_code, s.seat_type,
		COALESCE(t.status, '') <> '' AS taken
	FROM seats s
	JOIN events e ON e.area_id = s.area_id
	LEFT JOIN tickets t
		ON t.seat_id = s.seat_id
		AND t.event_id = e.event_id
		AND t.status IN ('PENDING', 'BOOKED', 'CHECKED_IN', 'CHECKED_OUT', 'REFUNDED')
	WHERE e.event_id = $1
	ORDER BY s.seat_id
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var seats []domain.SeatAvailability
	for rows.Next() {
		var seat domain.SeatAvailability
		if err := rows.Scan(&seat.SeatID, &seat.SeatCode, &seat.SeatType, &seat.Taken); err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

func (r *EventRepository) ActiveCategoryBySeatType(ctx context.Context, eventID int64, seatType string) (*domain.TicketCategory, error) {
	query := `
	SELECT category_id, event_id, name, price, status, max_quantity
	FROM ticket_categories
	WHERE event_id = $1 AND name = $2 AND status = 'ACTIVE'
	`

	return r.scanCategory(r.db.QueryRowContext(ctx, query, eventID, seatType))
}

func (r *EventRepository) CategoryByID(ctx context.Context, categoryID int64) (*domain.TicketCategory, error) {
	query := `
	SELECT category_id, event_id, name, price, status, max_quantity
	FROM ticket_categories
	WHERE category_id = $1
	`

	return r.scanCategory(r.db.QueryRowContext(ctx, query, categoryID))
}

func (r *EventRepository) scanCategory(row *sql.Row) (*domain.TicketCategory, error) {
	var category domain.TicketCategory
	err := row.Scan(
		&category.ID,
		&category.EventID,
		&category.Name,
		&category.Price,
		&category.Status,
		&category.MaxQuantity,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return &category, nil
}
