package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports"
	"github.com/srgjo27/event_ticketing/internal/monitoring"
	"github.com/srgjo27/event_ticketing/internal/vnpay"
)

type CreateHoldRequest struct {
	UserID   int64   `json:"user_id"`
	EventID  int64   `json:"event_id"`
	SeatIDs  []int64 `json:"seat_ids"`
	ClientIP string  `json:"-"`
}

type CreateHoldResponse struct {
	PaymentURL  string  `json:"payment_url"`
	TicketIDs   []int64 `json:"ticket_ids"`
	TotalAmount string  `json:"total_amount"`
}

// HoldService places provisional seat holds and hands the buyer off to the
// payment gateway. Holds are PENDING tickets: they reserve nothing
// permanently and only become binding at settlement.
type HoldService struct {
	events  ports.EventRepository
	tickets ports.TicketRepository
	cache   ports.SeatCache
	gateway vnpay.Config
}

func NewHoldService(events ports.EventRepository, tickets ports.TicketRepository, cache ports.SeatCache, gateway vnpay.Config) *HoldService {
	return &HoldService{
		events:  events,
		tickets: tickets,
		cache:   cache,
		gateway: gateway,
	}
}

// CreateHold validates the requested seats, writes one PENDING ticket per
// seat and returns the signed gateway redirect URL. The availability checks
// here are advisory only; the binding exclusivity decision happens at
// settlement, so two buyers holding the same seat is a legal intermediate
// state.
//
// TODO: holds abandoned mid-checkout (buyer closes the tab before the
// gateway redirects back) are never swept; they are only freed by a decline
// or failed settlement on the same order reference.
func (s *HoldService) CreateHold(ctx context.Context, req CreateHoldRequest) (*CreateHoldResponse, error) {
	if len(req.SeatIDs) == 0 {
		return nil, errors.New("no seats selected")
	}

	event, err := s.events.GetEventByID(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("event %d: %w", req.EventID, err)
	}

	if !event.OpenForSale() {
		return nil, fmt.Errorf("event %d is %s: %w", event.ID, event.Status, domain.ErrStateConflict)
	}

	taken, err := s.tickets.TakenSeatIDs(ctx, req.EventID, req.SeatIDs)
	if err != nil {
		return nil, err
	}

	if len(taken) > 0 {
		return nil, fmt.Errorf("seat %d: %w", taken[0], domain.ErrSeatTaken)
	}

	holds := make([]domain.Ticket, 0, len(req.SeatIDs))
	total := decimal.Zero
	categorySeen := map[int64]bool{}
	var categoryIDs []int64
	newPerCategory := map[int64]int64{}

	for _, seatID := range req.SeatIDs {
		seat, err := s.events.SeatForEvent(ctx, req.EventID, seatID)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", seatID, err)
		}

		if !seat.OnSale() {
			return nil, fmt.Errorf("seat %s is %s: %w", seat.SeatCode, seat.Status, domain.ErrStateConflict)
		}

		category, err := s.events.ActiveCategoryBySeatType(ctx, req.EventID, seat.SeatType)
		if err != nil {
			return nil, fmt.Errorf("no active category for seat type %s: %w", seat.SeatType, err)
		}

		newPerCategory[category.ID]++
		if err := s.checkCapacity(ctx, category, newPerCategory[category.ID]); err != nil {
			return nil, err
		}

		if !categorySeen[category.ID] {
			categorySeen[category.ID] = true
			categoryIDs = append(categoryIDs, category.ID)
		}

		total = total.Add(category.Price)
		holds = append(holds, domain.Ticket{
			EventID:    req.EventID,
			UserID:     req.UserID,
			CategoryID: category.ID,
			SeatID:     seatID,
		})
	}

	ticketIDs, err := s.tickets.InsertPending(ctx, holds)
	if err != nil {
		return nil, fmt.Errorf("failed to place holds: %w", err)
	}

	if err := s.cache.Invalidate(ctx, req.EventID); err != nil {
		log.Printf("seat cache invalidation failed for event %d: %v", req.EventID, err)
	}

	order := vnpay.OrderInfo{
		UserID:          req.UserID,
		EventID:         req.EventID,
		SeatIDs:         req.SeatIDs,
		TicketIDs:       ticketIDs,
		CategoryIDsUsed: categoryIDs,
	}

	paymentURL := vnpay.BuildPaymentURL(s.gateway, vnpay.PaymentRequest{
		TxnRef:    uuid.NewString(),
		Amount:    total,
		OrderInfo: order.Encode(),
		ClientIP:  req.ClientIP,
	}, time.Now())

	monitoring.TrackHoldCreated()

	return &CreateHoldResponse{
		PaymentURL:  paymentURL,
		TicketIDs:   ticketIDs,
		TotalAmount: total.StringFixed(2),
	}, nil
}

func (s *HoldService) checkCapacity(ctx context.Context, category *domain.TicketCategory, pendingInRequest int64) error {
	sold, err := s.tickets.SoldCountByCategory(ctx, category.ID)
	if err != nil {
		return err
	}

	if sold+pendingInRequest > int64(category.MaxQuantity) {
		return fmt.Errorf("category %s is sold out: %w", category.Name, domain.ErrStateConflict)
	}

	return nil
}

// ListSeats returns the event's seat map with derived availability, served
// from cache when hot.
func (s *HoldService) ListSeats(ctx context.Context, eventID int64) ([]domain.SeatAvailability, error) {
	if seats, ok := s.cache.Get(ctx, eventID); ok {
		return seats, nil
	}

	seats, err := s.events.SeatsWithAvailability(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, eventID, seats); err != nil {
		log.Printf("seat cache write failed for event %d: %v", eventID, err)
	}

	return seats, nil
}

// ReleaseHolds deletes the given PENDING tickets, freeing their seats. Used
// when the gateway declines or settlement validation fails.
func (s *HoldService) ReleaseHolds(ctx context.Context, eventID int64, ticketIDs []int64) error {
	if err := s.tickets.DeleteByIDs(ctx, ticketIDs); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, eventID); err != nil {
		log.Printf("seat cache invalidation failed for event %d: %v", eventID, err)
	}

	return nil
}
