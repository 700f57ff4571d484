package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/srgjo27/event_ticketing/internal/config"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports/mocks"
	"github.com/srgjo27/event_ticketing/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkinFixture struct {
	tickets *mocks.TicketRepository
	events  *mocks.EventRepository
	service *services.CheckinService
}

func newCheckinFixture(t *testing.T) *checkinFixture {
	f := &checkinFixture{
		tickets: mocks.NewTicketRepository(t),
		events:  mocks.NewEventRepository(t),
	}

	f.service = services.NewCheckinService(f.tickets, f.events, config.GateConfig{
		CheckinOpensBefore:      2 * time.Hour,
		CheckoutOpensAfterStart: 30 * time.Minute,
		CheckoutClosesAfter:     1 * time.Hour,
	})

	return f
}

// runningEvent is in progress right now, so all gate windows are open.
func runningEvent(id int64) *domain.Event {
	return &domain.Event{
		ID:        id,
		Title:     "Live Show",
		Status:    domain.EventOpen,
		StartTime: time.Now().Add(-1 * time.Hour),
		EndTime:   time.Now().Add(3 * time.Hour),
	}
}

func bookedTicket(id, eventID int64) *domain.Ticket {
	return &domain.Ticket{ID: id, EventID: eventID, UserID: 7, Status: domain.TicketBooked}
}

func TestCheckInScan_BatchAllSucceed(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	f.tickets.On("GetByID", ctx, int64(1)).Return(bookedTicket(1, 5), nil)
	f.tickets.On("GetByID", ctx, int64(2)).Return(bookedTicket(2, 5), nil)
	f.events.On("GetEventByID", ctx, int64(5)).Return(runningEvent(5), nil)
	f.tickets.On("CheckIn", ctx, mock.AnythingOfType("int64"), mock.AnythingOfType("time.Time")).Return(nil)

	result := f.service.CheckInScan(ctx, "TICKETS:1,2")

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalTickets)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.FailCount)
	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[0].Success)
}

func TestCheckInScan_PartialFailure(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	alreadyIn := bookedTicket(2, 5)
	alreadyIn.Status = domain.TicketCheckedIn

	f.tickets.On("GetByID", ctx, int64(1)).Return(bookedTicket(1, 5), nil)
	f.tickets.On("GetByID", ctx, int64(2)).Return(alreadyIn, nil)
	f.events.On("GetEventByID", ctx, int64(5)).Return(runningEvent(5), nil)
	f.tickets.On("CheckIn", ctx, int64(1), mock.AnythingOfType("time.Time")).Return(nil)

	result := f.service.CheckInScan(ctx, "TICKETS:1,2")

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailCount)
	assert.False(t, result.Results[1].Success)
	assert.Contains(t, result.Results[1].Message, "CHECKED_IN")
}

func TestCheckInScan_BareTicketID(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	f.tickets.On("GetByID", ctx, int64(17)).Return(bookedTicket(17, 5), nil)
	f.events.On("GetEventByID", ctx, int64(5)).Return(runningEvent(5), nil)
	f.tickets.On("CheckIn", ctx, int64(17), mock.AnythingOfType("time.Time")).Return(nil)

	result := f.service.CheckInScan(ctx, "17")

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.TotalTickets)
}

func TestCheckInScan_GarbagePayload(t *testing.T) {
	f := newCheckinFixture(t)

	result := f.service.CheckInScan(context.Background(), "not-a-ticket")

	assert.False(t, result.Success)
	assert.Zero(t, result.TotalTickets)
}

func TestCheckInScan_TicketNotFound(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	f.tickets.On("GetByID", ctx, int64(404)).Return(nil, domain.ErrNotFound)

	result := f.service.CheckInScan(ctx, "404")

	assert.False(t, result.Success)
	assert.Contains(t, result.Results[0].Message, "not found")
}

func TestCheckInScan_WindowNotOpenYet(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	future := runningEvent(5)
	future.StartTime = time.Now().Add(48 * time.Hour)
	future.EndTime = time.Now().Add(52 * time.Hour)

	f.tickets.On("GetByID", ctx, int64(1)).Return(bookedTicket(1, 5), nil)
	f.events.On("GetEventByID", ctx, int64(5)).Return(future, nil)

	result := f.service.CheckInScan(ctx, "1")

	assert.False(t, result.Success)
	assert.Contains(t, result.Results[0].Message, "opens at")
}

func TestCheckInScan_LostRaceOnGuardedUpdate(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	// The read said BOOKED but a concurrent scan got there first; the
	// guarded update is the source of truth.
	f.tickets.On("GetByID", ctx, int64(1)).Return(bookedTicket(1, 5), nil)
	f.events.On("GetEventByID", ctx, int64(5)).Return(runningEvent(5), nil)
	f.tickets.On("CheckIn", ctx, int64(1), mock.AnythingOfType("time.Time")).Return(domain.ErrStateConflict)

	result := f.service.CheckInScan(ctx, "1")

	assert.False(t, result.Success)
	assert.Contains(t, result.Results[0].Message, "already scanned")
}

func TestCheckOutScan_Success(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	inside := bookedTicket(1, 5)
	inside.Status = domain.TicketCheckedIn

	f.tickets.On("GetByID", ctx, int64(1)).Return(inside, nil)
	f.events.On("GetEventByID", ctx, int64(5)).Return(runningEvent(5), nil)
	f.tickets.On("CheckOut", ctx, int64(1), mock.AnythingOfType("time.Time")).Return(nil)

	result := f.service.CheckOutScan(ctx, "TICKETS:1")

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.SuccessCount)
}

func TestCheckOutScan_RequiresCheckedIn(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	f.tickets.On("GetByID", ctx, int64(1)).Return(bookedTicket(1, 5), nil)

	result := f.service.CheckOutScan(ctx, "1")

	assert.False(t, result.Success)
	assert.Contains(t, result.Results[0].Message, "expected CHECKED_IN")
}

func TestCheckOutScan_TooSoonAfterStart(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	// Checked in early, before the event even started; leaving is not
	// allowed until the event has been running for the configured minimum.
	early := runningEvent(5)
	early.StartTime = time.Now().Add(1 * time.Hour)
	early.EndTime = time.Now().Add(5 * time.Hour)

	inside := bookedTicket(1, 5)
	inside.Status = domain.TicketCheckedIn

	f.tickets.On("GetByID", ctx, int64(1)).Return(inside, nil)
	f.events.On("GetEventByID", ctx, int64(5)).Return(early, nil)

	result := f.service.CheckOutScan(ctx, "1")

	assert.False(t, result.Success)
	assert.Contains(t, result.Results[0].Message, "opens at")
}

func TestCheckOutScan_WindowClosed(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	over := runningEvent(5)
	over.StartTime = time.Now().Add(-10 * time.Hour)
	over.EndTime = time.Now().Add(-5 * time.Hour)

	inside := bookedTicket(1, 5)
	inside.Status = domain.TicketCheckedIn

	f.tickets.On("GetByID", ctx, int64(1)).Return(inside, nil)
	f.events.On("GetEventByID", ctx, int64(5)).Return(over, nil)

	result := f.service.CheckOutScan(ctx, "1")

	assert.False(t, result.Success)
	assert.Contains(t, result.Results[0].Message, "closed at")
}
