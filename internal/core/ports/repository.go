package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

type TicketRepository interface {
	// InsertPending creates one PENDING hold per entry and returns the new
	// ticket IDs in input order.
	InsertPending(ctx context.Context, holds []domain.Ticket) ([]int64, error)
	FindByIDs(ctx context.Context, ticketIDs []int64) ([]domain.Ticket, error)
	GetByID(ctx context.Context, ticketID int64) (*domain.Ticket, error)
	DeleteByIDs(ctx context.Context, ticketIDs []int64) error
	// TakenSeatIDs reports which of the given seats already carry a live
	// ticket (any status except CANCELLED) for the event.
	TakenSeatIDs(ctx context.Context, eventID int64, seatIDs []int64) ([]int64, error)
	SoldCountByCategory(ctx context.Context, categoryID int64) (int64, error)
	// CheckIn flips one ticket BOOKED -> CHECKED_IN; domain.ErrStateConflict
	// if the ticket is not currently BOOKED.
	CheckIn(ctx context.Context, ticketID int64, at time.Time) error
	// CheckOut flips one ticket CHECKED_IN -> CHECKED_OUT.
	CheckOut(ctx context.Context, ticketID int64, at time.Time) error
	SetAdmissionCode(ctx context.Context, ticketID int64, code string) error
}

type BillRepository interface {
	// SettleHolds promotes the given PENDING tickets to BOOKED and records
	// the bill, all in one transaction. Returns the new bill ID.
	// domain.ErrStateConflict if any ticket is no longer PENDING,
	// domain.ErrSeatTaken if a seat was settled by a rival hold first.
	SettleHolds(ctx context.Context, ticketIDs []int64, bill *domain.Bill, issuedAt time.Time) (int64, error)
	// SettleHoldsWithWallet is SettleHolds plus a guarded wallet debit in
	// the same transaction. domain.ErrInsufficientFunds if the balance
	// cannot cover the bill.
	SettleHoldsWithWallet(ctx context.Context, ticketIDs []int64, bill *domain.Bill, issuedAt time.Time) (int64, error)
}

type EventRepository interface {
	GetEventByID(ctx context.Context, eventID int64) (*domain.Event, error)
	SeatForEvent(ctx context.Context, eventID, seatID int64) (*domain.EventSeat, error)
	SeatsWithAvailability(ctx context.Context, eventID int64) ([]domain.SeatAvailability, error)
	ActiveCategoryBySeatType(ctx context.Context, eventID int64, seatType string) (*domain.TicketCategory, error)
	CategoryByID(ctx context.Context, categoryID int64) (*domain.TicketCategory, error)
}

type ReportRepository interface {
	Insert(ctx context.Context, report *domain.Report) (int64, error)
	GetByID(ctx context.Context, reportID int64) (*domain.Report, error)
	HasPendingForTicket(ctx context.Context, ticketID int64) (bool, error)
	IsTicketOwnedBy(ctx context.Context, ticketID, userID int64) (bool, error)
	// Resolve approves or rejects a refund report in one transaction. On
	// approval it credits the holder's wallet with the category price and
	// flips the ticket CHECKED_IN -> REFUNDED; the refunded amount is
	// returned. domain.ErrStateConflict if the report was already
	// processed or the ticket is not CHECKED_IN.
	Resolve(ctx context.Context, reportID, staffID int64, approve bool, staffNote string) (decimal.Decimal, error)
	ListForStaff(ctx context.Context, status domain.ReportStatus) ([]domain.ReportListItem, error)
}

type WalletRepository interface {
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
}

// Notifier pushes an out-of-band message to one user. Implementations must be
// safe to call from detached goroutines.
type Notifier interface {
	Publish(ctx context.Context, userID int64, message any) error
}

// AdmissionCoder mints the scannable codes printed on issued tickets.
type AdmissionCoder interface {
	Code(ticketID int64) (string, error)
	BatchCode(ticketIDs []int64) string
}

type SeatCache interface {
	Get(ctx context.Context, eventID int64) ([]domain.SeatAvailability, bool)
	Set(ctx context.Context, eventID int64, seats []domain.SeatAvailability) error
	Invalidate(ctx context.Context, eventID int64) error
}

// ReplayGuard remembers gateway transaction references so a replayed callback
// can be rejected before it reaches settlement.
type ReplayGuard interface {
	// FirstSeen marks ref and reports whether this was its first sighting.
	FirstSeen(ctx context.Context, ref string) (bool, error)
}
