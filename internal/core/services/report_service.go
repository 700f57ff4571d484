package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports"
	"github.com/srgjo27/event_ticketing/internal/monitoring"
)

type FileReportRequest struct {
	UserID      int64  `json:"user_id"`
	TicketID    int64  `json:"ticket_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ResolveReportRequest struct {
	ReportID  int64  `json:"report_id"`
	StaffID   int64  `json:"staff_id"`
	Approve   bool   `json:"approve"`
	StaffNote string `json:"staff_note"`
}

type ResolveReportResponse struct {
	Status       domain.ReportStatus `json:"status"`
	RefundAmount string              `json:"refund_amount,omitempty"`
}

// ReportService handles refund disputes: holders file them, staff resolve
// them exactly once. All the money movement lives in the repository's
// resolution transaction; this layer adds eligibility checks and the
// follow-up notification.
type ReportService struct {
	reports  ports.ReportRepository
	tickets  ports.TicketRepository
	notifier ports.Notifier
}

func NewReportService(reports ports.ReportRepository, tickets ports.TicketRepository, notifier ports.Notifier) *ReportService {
	return &ReportService{
		reports:  reports,
		tickets:  tickets,
		notifier: notifier,
	}
}

// FileReport opens a refund dispute for a ticket the caller owns. Only a
// CHECKED_IN ticket is disputable, and only one dispute may be pending per
// ticket at a time.
func (s *ReportService) FileReport(ctx context.Context, req FileReportRequest) (int64, error) {
	if req.Title == "" {
		return 0, errors.New("report title is required")
	}

	ticket, err := s.tickets.GetByID(ctx, req.TicketID)
	if err != nil {
		return 0, fmt.Errorf("ticket %d: %w", req.TicketID, err)
	}

	owned, err := s.reports.IsTicketOwnedBy(ctx, req.TicketID, req.UserID)
	if err != nil {
		return 0, err
	}

	if !owned {
		return 0, fmt.Errorf("ticket %d does not belong to user %d: %w",
			req.TicketID, req.UserID, domain.ErrNotFound)
	}

	if ticket.Status != domain.TicketCheckedIn {
		return 0, fmt.Errorf("ticket %d is %s, only %s tickets are refundable: %w",
			req.TicketID, ticket.Status, domain.TicketCheckedIn, domain.ErrStateConflict)
	}

	pending, err := s.reports.HasPendingForTicket(ctx, req.TicketID)
	if err != nil {
		return 0, err
	}

	if pending {
		return 0, fmt.Errorf("ticket %d already has a pending report: %w",
			req.TicketID, domain.ErrStateConflict)
	}

	reportID, err := s.reports.Insert(ctx, &domain.Report{
		UserID:      req.UserID,
		TicketID:    req.TicketID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.ReportPending,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to file report: %w", err)
	}

	return reportID, nil
}

// ResolveReport approves or rejects one report. Approval refunds the
// category's current price to the holder's wallet and retires the ticket;
// both happen in one transaction or not at all.
func (s *ReportService) ResolveReport(ctx context.Context, req ResolveReportRequest) (*ResolveReportResponse, error) {
	refund, err := s.reports.Resolve(ctx, req.ReportID, req.StaffID, req.Approve, req.StaffNote)
	if err != nil {
		return nil, err
	}

	if !req.Approve {
		monitoring.TrackRefund("rejected")
		return &ResolveReportResponse{Status: domain.ReportRejected}, nil
	}

	monitoring.TrackRefund("approved")

	go s.notifyResolution(req.ReportID, refund)

	return &ResolveReportResponse{
		Status:       domain.ReportApproved,
		RefundAmount: refund.StringFixed(2),
	}, nil
}

func (s *ReportService) notifyResolution(reportID int64, refund decimal.Decimal) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		log.Printf("cannot load report %d for notification: %v", reportID, err)
		return
	}

	message := map[string]any{
		"type":         "refund_approved",
		"reportId":     reportID,
		"refundAmount": refund.StringFixed(2),
	}

	if err := s.notifier.Publish(ctx, report.UserID, message); err != nil {
		log.Printf("failed to notify user %d about report %d: %v", report.UserID, reportID, err)
	}
}

// ListReports returns reports for the staff console, optionally filtered by
// status.
func (s *ReportService) ListReports(ctx context.Context, status domain.ReportStatus) ([]domain.ReportListItem, error) {
	return s.reports.ListForStaff(ctx, status)
}
