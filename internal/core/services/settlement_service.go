package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports"
	"github.com/srgjo27/event_ticketing/internal/monitoring"
	"github.com/srgjo27/event_ticketing/internal/vnpay"
)

// Terminal settlement reason codes. They travel to the frontend in the result
// redirect and label the settlement metrics.
const (
	ReasonOK                  = "OK"
	ReasonInvalidSignature    = "invalid_signature"
	ReasonDuplicateCallback   = "duplicate_callback"
	ReasonOrderInfoInvalid    = "order_info_invalid"
	ReasonEventInvalid        = "event_invalid"
	ReasonSeatNotFound        = "seat_not_found"
	ReasonHoldsMissing        = "pending_tickets_missing"
	ReasonHoldMismatch        = "pending_ticket_mismatch"
	ReasonHoldInvalidStatus   = "pending_ticket_invalid_status"
	ReasonHoldCategoryInvalid = "pending_ticket_category_invalid"
	ReasonSeatAlreadyBooked   = "seat_already_booked"
	ReasonTicketFailedDB      = "ticket_failed_db"
	ReasonWalletInsufficient  = "wallet_insufficient"
)

// RedirectOutcome is what the buyer's browser is told after a gateway return.
// Exactly one outcome exists per callback; failures carry the reason code.
type RedirectOutcome struct {
	Success   bool
	Reason    string
	BillID    int64
	TicketIDs []int64
}

// ResultURL renders the frontend redirect target with the outcome appended.
func (o *RedirectOutcome) ResultURL(base string) string {
	status := "failed"
	if o.Success {
		status = "success"
	}

	params := url.Values{}
	params.Set("status", status)
	params.Set("reason", o.Reason)
	if o.Success {
		params.Set("billId", strconv.FormatInt(o.BillID, 10))
		ids := make([]string, len(o.TicketIDs))
		for i, id := range o.TicketIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		params.Set("ticketIds", strings.Join(ids, ","))
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}

type WalletSettlementRequest struct {
	UserID    int64   `json:"user_id"`
	EventID   int64   `json:"event_id"`
	SeatIDs   []int64 `json:"seat_ids"`
	TicketIDs []int64 `json:"ticket_ids"`
}

type WalletSettlementResponse struct {
	BillID      int64   `json:"bill_id"`
	TicketIDs   []int64 `json:"ticket_ids"`
	TotalAmount string  `json:"total_amount"`
}

// SettlementService turns authenticated payment confirmations into issued
// tickets. It owns the single moment where seat exclusivity becomes binding.
type SettlementService struct {
	events   ports.EventRepository
	tickets  ports.TicketRepository
	bills    ports.BillRepository
	cache    ports.SeatCache
	notifier ports.Notifier
	coder    ports.AdmissionCoder
	replay   ports.ReplayGuard
	secret   string
}

func NewSettlementService(
	events ports.EventRepository,
	tickets ports.TicketRepository,
	bills ports.BillRepository,
	cache ports.SeatCache,
	notifier ports.Notifier,
	coder ports.AdmissionCoder,
	replay ports.ReplayGuard,
	secret string,
) *SettlementService {
	return &SettlementService{
		events:   events,
		tickets:  tickets,
		bills:    bills,
		cache:    cache,
		notifier: notifier,
		coder:    coder,
		replay:   replay,
		secret:   secret,
	}
}

// HandleGatewayReturn processes one gateway callback end to end and always
// produces an outcome; it never returns an error to the transport layer
// because the buyer's browser must be redirected no matter what happened.
//
// The order is strict: authenticate, dedupe, decode, validate, settle.
// Nothing in the database changes before the signature has been verified.
func (s *SettlementService) HandleGatewayReturn(ctx context.Context, values url.Values) *RedirectOutcome {
	cb, err := vnpay.VerifyCallback(s.secret, values)
	if err != nil {
		log.Printf("gateway callback rejected: %v", err)
		monitoring.TrackCallbackRejected("signature")
		return s.fail(ReasonInvalidSignature)
	}

	first, err := s.replay.FirstSeen(ctx, cb.TxnRef)
	if err != nil {
		log.Printf("replay guard error for ref %s: %v", cb.TxnRef, err)
	} else if !first {
		log.Printf("gateway callback replayed for ref %s, rejecting", cb.TxnRef)
		monitoring.TrackCallbackRejected("replay")
		return s.fail(ReasonDuplicateCallback)
	}

	order, orderErr := cb.OrderInfo()

	if cb.Declined() {
		// The attempt is over; free the held seats if the order reference
		// tells us which ones they were.
		if orderErr == nil {
			s.releaseHolds(ctx, order.EventID, order.TicketIDs)
		}
		log.Printf("gateway declined ref %s with code %s", cb.TxnRef, cb.ResponseCode)
		return s.fail(cb.ResponseCode)
	}

	if orderErr != nil {
		log.Printf("gateway callback ref %s has bad order info: %v", cb.TxnRef, orderErr)
		monitoring.TrackCallbackRejected("order_info")
		return s.fail(ReasonOrderInfoInvalid)
	}

	if reason := s.validateHolds(ctx, order); reason != "" {
		s.releaseHolds(ctx, order.EventID, order.TicketIDs)
		return s.fail(reason)
	}

	bill := domain.NewPaidBill(order.UserID, vnpay.AmountFromMinor(cb.AmountMinor), domain.PaymentGateway)

	billID, err := s.bills.SettleHolds(ctx, order.TicketIDs, bill, time.Now())
	if err != nil {
		return s.settlementFailure(ctx, order, err)
	}

	return s.succeed(ctx, order, billID)
}

// SettleWithWallet finalizes a hold batch against the buyer's wallet balance
// instead of a gateway payment. The validation and exclusivity rules are
// identical; only the funding source differs.
func (s *SettlementService) SettleWithWallet(ctx context.Context, req WalletSettlementRequest) (*WalletSettlementResponse, error) {
	order := &vnpay.OrderInfo{
		UserID:    req.UserID,
		EventID:   req.EventID,
		SeatIDs:   req.SeatIDs,
		TicketIDs: req.TicketIDs,
	}

	if reason := s.validateHolds(ctx, order); reason != "" {
		s.releaseHolds(ctx, order.EventID, order.TicketIDs)
		monitoring.TrackSettlement(reason)
		return nil, fmt.Errorf("%s: %w", reason, domain.ErrStateConflict)
	}

	total, err := s.holdTotal(ctx, order.TicketIDs)
	if err != nil {
		monitoring.TrackSettlement(ReasonTicketFailedDB)
		return nil, err
	}

	bill := domain.NewPaidBill(req.UserID, total, domain.PaymentWallet)

	billID, err := s.bills.SettleHoldsWithWallet(ctx, order.TicketIDs, bill, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			monitoring.TrackSettlement(ReasonWalletInsufficient)
			return nil, err
		}

		outcome := s.settlementFailure(ctx, order, err)
		return nil, fmt.Errorf("%s: settlement failed: %w", outcome.Reason, err)
	}

	outcome := s.succeed(ctx, order, billID)

	return &WalletSettlementResponse{
		BillID:      outcome.BillID,
		TicketIDs:   outcome.TicketIDs,
		TotalAmount: total.StringFixed(2),
	}, nil
}

// validateHolds re-checks everything the hold creation checked, because
// minutes have passed and the world has moved on. Returns "" when the batch
// is settleable.
func (s *SettlementService) validateHolds(ctx context.Context, order *vnpay.OrderInfo) string {
	if len(order.SeatIDs) == 0 || len(order.TicketIDs) == 0 || len(order.SeatIDs) != len(order.TicketIDs) {
		return ReasonOrderInfoInvalid
	}

	event, err := s.events.GetEventByID(ctx, order.EventID)
	if err != nil || !event.OpenForSale() {
		return ReasonEventInvalid
	}

	for _, seatID := range order.SeatIDs {
		if _, err := s.events.SeatForEvent(ctx, order.EventID, seatID); err != nil {
			return ReasonSeatNotFound
		}
	}

	tickets, err := s.tickets.FindByIDs(ctx, order.TicketIDs)
	if err != nil {
		return ReasonTicketFailedDB
	}

	if len(tickets) != len(order.TicketIDs) {
		return ReasonHoldsMissing
	}

	allowedSeats := map[int64]bool{}
	for _, id := range order.SeatIDs {
		allowedSeats[id] = true
	}

	allowedCategories := map[int64]bool{}
	for _, id := range order.CategoryIDsUsed {
		allowedCategories[id] = true
	}

	for _, ticket := range tickets {
		if ticket.UserID != order.UserID || ticket.EventID != order.EventID || !allowedSeats[ticket.SeatID] {
			return ReasonHoldMismatch
		}

		if ticket.Status != domain.TicketPending {
			return ReasonHoldInvalidStatus
		}

		if len(allowedCategories) > 0 && !allowedCategories[ticket.CategoryID] {
			return ReasonHoldCategoryInvalid
		}
	}

	return ""
}

// holdTotal prices a hold batch from current category prices.
func (s *SettlementService) holdTotal(ctx context.Context, ticketIDs []int64) (decimal.Decimal, error) {
	tickets, err := s.tickets.FindByIDs(ctx, ticketIDs)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, ticket := range tickets {
		category, err := s.events.CategoryByID(ctx, ticket.CategoryID)
		if err != nil {
			return decimal.Zero, err
		}

		total = total.Add(category.Price)
	}

	return total, nil
}

func (s *SettlementService) settlementFailure(ctx context.Context, order *vnpay.OrderInfo, err error) *RedirectOutcome {
	// A lost exclusivity race or a vanished hold both mean this batch can
	// never settle; the leftover holds are freed either way.
	switch {
	case errors.Is(err, domain.ErrSeatTaken):
		log.Printf("settlement lost seat race for user %d: %v", order.UserID, err)
		s.releaseHolds(ctx, order.EventID, order.TicketIDs)
		return s.fail(ReasonSeatAlreadyBooked)
	case errors.Is(err, domain.ErrStateConflict):
		log.Printf("settlement hold conflict for user %d: %v", order.UserID, err)
		s.releaseHolds(ctx, order.EventID, order.TicketIDs)
		return s.fail(ReasonHoldInvalidStatus)
	default:
		log.Printf("settlement storage failure for user %d: %v", order.UserID, err)
		s.releaseHolds(ctx, order.EventID, order.TicketIDs)
		return s.fail(ReasonTicketFailedDB)
	}
}

func (s *SettlementService) succeed(ctx context.Context, order *vnpay.OrderInfo, billID int64) *RedirectOutcome {
	if err := s.cache.Invalidate(ctx, order.EventID); err != nil {
		log.Printf("seat cache invalidation failed for event %d: %v", order.EventID, err)
	}

	// Admission codes and the buyer notification happen off the request
	// path: the sale is already durable and nothing here may undo it.
	go s.finalizeTickets(order.UserID, billID, order.TicketIDs)

	monitoring.TrackSettlement(ReasonOK)

	return &RedirectOutcome{
		Success:   true,
		Reason:    ReasonOK,
		BillID:    billID,
		TicketIDs: order.TicketIDs,
	}
}

func (s *SettlementService) finalizeTickets(userID, billID int64, ticketIDs []int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, ticketID := range ticketIDs {
		code, err := s.coder.Code(ticketID)
		if err != nil {
			log.Printf("failed to mint admission code for ticket %d: %v", ticketID, err)
			continue
		}

		if err := s.tickets.SetAdmissionCode(ctx, ticketID, code); err != nil {
			log.Printf("failed to store admission code for ticket %d: %v", ticketID, err)
		}
	}

	message := map[string]any{
		"type":      "payment_settled",
		"billId":    billID,
		"ticketIds": ticketIDs,
		"qrContent": s.coder.BatchCode(ticketIDs),
	}

	if err := s.notifier.Publish(ctx, userID, message); err != nil {
		log.Printf("failed to notify user %d about bill %d: %v", userID, billID, err)
	}
}

func (s *SettlementService) releaseHolds(ctx context.Context, eventID int64, ticketIDs []int64) {
	if len(ticketIDs) == 0 {
		return
	}

	if err := s.tickets.DeleteByIDs(ctx, ticketIDs); err != nil {
		log.Printf("failed to release holds %v: %v", ticketIDs, err)
		return
	}

	if err := s.cache.Invalidate(ctx, eventID); err != nil {
		log.Printf("seat cache invalidation failed for event %d: %v", eventID, err)
	}
}

func (s *SettlementService) fail(reason string) *RedirectOutcome {
	monitoring.TrackSettlement(reason)
	return &RedirectOutcome{Success: false, Reason: reason}
}
