package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "PENDING"
	ReportApproved ReportStatus = "APPROVED"
	ReportRejected ReportStatus = "REJECTED"
)

// Report is a holder-filed dispute against a ticket. It is resolved exactly
// once by staff: APPROVED credits the holder's wallet with the category price
// and retires the ticket, REJECTED leaves ticket and wallet untouched.
type Report struct {
	ID           int64
	UserID       int64
	TicketID     int64
	Title        string
	Description  string
	Status       ReportStatus
	CreatedAt    time.Time
	ProcessedBy  *int64
	ProcessedAt  *time.Time
	StaffNote    string
	RefundAmount decimal.NullDecimal
}

// ReportListItem is the thin staff-facing listing row.
type ReportListItem struct {
	ReportID     int64           `json:"report_id"`
	TicketID     int64           `json:"ticket_id"`
	Title        string          `json:"title"`
	Status       ReportStatus    `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	FilerName    string          `json:"filer_name"`
	TicketStatus TicketStatus    `json:"ticket_status"`
	CategoryName string          `json:"category_name"`
	Price        decimal.Decimal `json:"price"`
}
