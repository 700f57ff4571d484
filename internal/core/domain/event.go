package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	EventOpen      EventStatus = "OPEN"
	EventClosed    EventStatus = "CLOSED"
	EventCancelled EventStatus = "CANCELLED"
	EventDraft     EventStatus = "DRAFT"
)

type Event struct {
	ID        int64
	Title     string
	Status    EventStatus
	AreaID    *int64
	StartTime time.Time
	EndTime   time.Time
}

func (e *Event) OpenForSale() bool {
	return e.Status == EventOpen
}

// EventSeat is a physical seat joined with its per-event layout row. The
// layout carries the seat type (maps to a ticket category by name) and the
// sale status, the physical seat carries code and area.
type EventSeat struct {
	SeatID   int64
	SeatCode string
	AreaID   int64
	SeatType string
	Status   string
}

func (s *EventSeat) OnSale() bool {
	return s.Status == "AVAILABLE"
}

// SeatAvailability is the rendering view: availability is always derived by
// joining current ticket rows against the layout, never stored as a flag.
type SeatAvailability struct {
	SeatID   int64  `json:"seat_id"`
	SeatCode string `json:"seat_code"`
	SeatType string `json:"seat_type"`
	Taken    bool   `json:"taken"`
}

type CategoryStatus string

const (
	CategoryActive   CategoryStatus = "ACTIVE"
	CategoryInactive CategoryStatus = "INACTIVE"
)

// TicketCategory is a priced ticket class (VIP/Standard) with a capacity
// limit, scoped to one event.
type TicketCategory struct {
	ID          int64
	EventID     int64
	Name        string
	Price       decimal.Decimal
	Status      CategoryStatus
	MaxQuantity int
}

func (c *TicketCategory) Active() bool {
	return c.Status == CategoryActive
}
