package domain

import (
	"time"
)

type TicketStatus string

const (
	TicketPending    TicketStatus = "PENDING"
	TicketBooked     TicketStatus = "BOOKED"
	TicketCheckedIn  TicketStatus = "CHECKED_IN"
	TicketCheckedOut TicketStatus = "CHECKED_OUT"
	TicketRefunded   TicketStatus = "REFUNDED"
	TicketCancelled  TicketStatus = "CANCELLED"
)

// TakenStatuses are the statuses that occupy a seat for good. At most one
// ticket per (event, seat) may carry one of these at any time; the partial
// unique index in migration 002 enforces it. PENDING holds are provisional
// and deliberately excluded so that racing holds coexist until settlement.
var TakenStatuses = []TicketStatus{
	TicketBooked,
	TicketCheckedIn,
	TicketCheckedOut,
	TicketRefunded,
}

// PlaceholderAdmissionCode is stored on a PENDING hold until settlement
// finalizes the real admission code.
const PlaceholderAdmissionCode = "PENDING_QR"

type Ticket struct {
	ID            int64
	EventID       int64
	UserID        int64
	CategoryID    int64
	SeatID        int64
	BillID        *int64
	AdmissionCode string
	IssuedAt      *time.Time
	Status        TicketStatus
	CheckinTime   *time.Time
	CheckoutTime  *time.Time
}

// Taken reports whether the ticket occupies its seat permanently.
func (t *Ticket) Taken() bool {
	for _, s := range TakenStatuses {
		if t.Status == s {
			return true
		}
	}
	return false
}
