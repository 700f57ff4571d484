package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/srgjo27/event_ticketing/internal/config"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports"
	"github.com/srgjo27/event_ticketing/internal/monitoring"
	"github.com/srgjo27/event_ticketing/internal/qrcode"
)

type TicketScanResult struct {
	TicketID int64  `json:"ticketId"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
}

// BatchScanResult is the gate terminal's response envelope. Success is true
// only when every ticket in the batch went through; partial batches report
// per-ticket messages so staff can wave the good ones in.
type BatchScanResult struct {
	Success      bool               `json:"success"`
	Message      string             `json:"message"`
	TotalTickets int                `json:"totalTickets"`
	SuccessCount int                `json:"successCount"`
	FailCount    int                `json:"failCount"`
	Results      []TicketScanResult `json:"results"`
}

// CheckinService drives the gate state machine: BOOKED -> CHECKED_IN on the
// way in, CHECKED_IN -> CHECKED_OUT on the way out. Every transition is a
// guarded update; a scan can never move a ticket more than one step.
type CheckinService struct {
	tickets ports.TicketRepository
	events  ports.EventRepository
	gate    config.GateConfig
}

func NewCheckinService(tickets ports.TicketRepository, events ports.EventRepository, gate config.GateConfig) *CheckinService {
	return &CheckinService{
		tickets: tickets,
		events:  events,
		gate:    gate,
	}
}

// CheckInScan processes one scanner payload, which may carry a single ticket
// ID or a whole batch.
func (s *CheckinService) CheckInScan(ctx context.Context, payload string) *BatchScanResult {
	return s.processScan(ctx, payload, s.checkInOne, "checked in", "check-in")
}

// CheckOutScan is the leaving-the-venue counterpart.
func (s *CheckinService) CheckOutScan(ctx context.Context, payload string) *BatchScanResult {
	return s.processScan(ctx, payload, s.checkOutOne, "checked out", "check-out")
}

func (s *CheckinService) processScan(ctx context.Context, payload string, transition func(context.Context, int64) error, verb, direction string) *BatchScanResult {
	ticketIDs, err := qrcode.ParsePayload(payload)
	if err != nil {
		return &BatchScanResult{
			Success: false,
			Message: err.Error(),
			Results: []TicketScanResult{},
		}
	}

	result := &BatchScanResult{
		TotalTickets: len(ticketIDs),
		Results:      make([]TicketScanResult, 0, len(ticketIDs)),
	}

	for _, ticketID := range ticketIDs {
		item := TicketScanResult{TicketID: ticketID, Success: true, Message: "ticket " + verb}

		if err := transition(ctx, ticketID); err != nil {
			item.Success = false
			item.Message = err.Error()
			result.FailCount++
		} else {
			result.SuccessCount++
		}

		monitoring.TrackAdmission(direction, item.Success)
		result.Results = append(result.Results, item)
	}

	result.Success = result.FailCount == 0
	if result.Success {
		result.Message = fmt.Sprintf("all %d tickets %s", result.TotalTickets, verb)
	} else {
		result.Message = fmt.Sprintf("%d of %d tickets failed %s", result.FailCount, result.TotalTickets, direction)
	}

	return result
}

func (s *CheckinService) checkInOne(ctx context.Context, ticketID int64) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("ticket %d not found", ticketID)
		}
		return err
	}

	if ticket.Status != domain.TicketBooked {
		return fmt.Errorf("ticket %d is %s, expected %s", ticketID, ticket.Status, domain.TicketBooked)
	}

	event, err := s.events.GetEventByID(ctx, ticket.EventID)
	if err != nil {
		return fmt.Errorf("event %d for ticket %d: %v", ticket.EventID, ticketID, err)
	}

	now := time.Now()
	opens := event.StartTime.Add(-s.gate.CheckinOpensBefore)
	if now.Before(opens) {
		return fmt.Errorf("check-in for %q opens at %s", event.Title, opens.Format(time.RFC3339))
	}

	if now.After(event.EndTime) {
		return fmt.Errorf("event %q has ended", event.Title)
	}

	if err := s.tickets.CheckIn(ctx, ticketID, now); err != nil {
		if errors.Is(err, domain.ErrStateConflict) {
			return fmt.Errorf("ticket %d was already scanned", ticketID)
		}
		return err
	}

	return nil
}

func (s *CheckinService) checkOutOne(ctx context.Context, ticketID int64) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("ticket %d not found", ticketID)
		}
		return err
	}

	if ticket.Status != domain.TicketCheckedIn {
		return fmt.Errorf("ticket %d is %s, expected %s", ticketID, ticket.Status, domain.TicketCheckedIn)
	}

	event, err := s.events.GetEventByID(ctx, ticket.EventID)
	if err != nil {
		return fmt.Errorf("event %d for ticket %d: %v", ticket.EventID, ticketID, err)
	}

	now := time.Now()
	opens := event.StartTime.Add(s.gate.CheckoutOpensAfterStart)
	if now.Before(opens) {
		return fmt.Errorf("check-out for %q opens at %s", event.Title, opens.Format(time.RFC3339))
	}

	closes := event.EndTime.Add(s.gate.CheckoutClosesAfter)
	if now.After(closes) {
		return fmt.Errorf("check-out for %q closed at %s", event.Title, closes.Format(time.RFC3339))
	}

	if err := s.tickets.CheckOut(ctx, ticketID, now); err != nil {
		if errors.Is(err, domain.ErrStateConflict) {
			return fmt.Errorf("ticket %d was already scanned", ticketID)
		}
		return err
	}

	return nil
}
