package services_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports/mocks"
	"github.com/srgjo27/event_ticketing/internal/core/services"
	"github.com/srgjo27/event_ticketing/internal/vnpay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type holdFixture struct {
	events  *mocks.EventRepository
	tickets *mocks.TicketRepository
	cache   *mocks.SeatCache
	service *services.HoldService
}

func newHoldFixture(t *testing.T) *holdFixture {
	f := &holdFixture{
		events:  mocks.NewEventRepository(t),
		tickets: mocks.NewTicketRepository(t),
		cache:   mocks.NewSeatCache(t),
	}

	gateway := vnpay.Config{
		TmnCode:    "TESTCODE",
		HashSecret: gatewaySecret,
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "http://localhost:8080/api/payment/return",
	}

	f.service = services.NewHoldService(f.events, f.tickets, f.cache, gateway)
	return f
}

func standardSeat(code string) *domain.EventSeat {
	return &domain.EventSeat{SeatCode: code, SeatType: "Standard", Status: "AVAILABLE"}
}

func standardCategory() *domain.TicketCategory {
	return &domain.TicketCategory{
		ID:          3,
		EventID:     5,
		Name:        "Standard",
		Price:       decimal.NewFromInt(100000),
		Status:      domain.CategoryActive,
		MaxQuantity: 100,
	}
}

func TestCreateHold_Success(t *testing.T) {
	f := newHoldFixture(t)
	ctx := context.Background()

	req := services.CreateHoldRequest{
		UserID:   7,
		EventID:  5,
		SeatIDs:  []int64{12, 13},
		ClientIP: "127.0.0.1",
	}

	f.events.On("GetEventByID", ctx, int64(5)).Return(openEvent(5), nil)
	f.tickets.On("TakenSeatIDs", ctx, int64(5), req.SeatIDs).Return(nil, nil)
	f.events.On("SeatForEvent", ctx, int64(5), int64(12)).Return(standardSeat("A1"), nil)
	f.events.On("SeatForEvent", ctx, int64(5), int64(13)).Return(standardSeat("A2"), nil)
	f.events.On("ActiveCategoryBySeatType", ctx, int64(5), "Standard").Return(standardCategory(), nil)
	f.tickets.On("SoldCountByCategory", ctx, int64(3)).Return(int64(10), nil)
	f.tickets.On("InsertPending", ctx, []domain.Ticket{
		{EventID: 5, UserID: 7, CategoryID: 3, SeatID: 12},
		{EventID: 5, UserID: 7, CategoryID: 3, SeatID: 13},
	}).Return([]int64{101, 102}, nil)
	f.cache.On("Invalidate", ctx, int64(5)).Return(nil)

	resp, err := f.service.CreateHold(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102}, resp.TicketIDs)
	assert.Equal(t, "200000.00", resp.TotalAmount)

	// The payment URL must verify with the same secret and carry the order
	// reference that maps back to these holds.
	u, err := url.Parse(resp.PaymentURL)
	require.NoError(t, err)
	cb, err := vnpay.VerifyCallback(gatewaySecret, u.Query())
	require.NoError(t, err)
	order, err := cb.OrderInfo()
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102}, order.TicketIDs)
	assert.Equal(t, []int64{3}, order.CategoryIDsUsed)
	assert.Equal(t, int64(20000000), cb.AmountMinor)
}

func TestCreateHold_NoSeats(t *testing.T) {
	f := newHoldFixture(t)

	_, err := f.service.CreateHold(context.Background(), services.CreateHoldRequest{UserID: 7, EventID: 5})

	assert.Error(t, err)
}

func TestCreateHold_EventNotOpen(t *testing.T) {
	f := newHoldFixture(t)
	ctx := context.Background()

	closed := openEvent(5)
	closed.Status = domain.EventClosed

	f.events.On("GetEventByID", ctx, int64(5)).Return(closed, nil)

	_, err := f.service.CreateHold(ctx, services.CreateHoldRequest{
		UserID: 7, EventID: 5, SeatIDs: []int64{12},
	})

	assert.ErrorIs(t, err, domain.ErrStateConflict)
}

func TestCreateHold_SeatAlreadyTaken(t *testing.T) {
	f := newHoldFixture(t)
	ctx := context.Background()

	f.events.On("GetEventByID", ctx, int64(5)).Return(openEvent(5), nil)
	f.tickets.On("TakenSeatIDs", ctx, int64(5), []int64{12}).Return([]int64{12}, nil)

	_, err := f.service.CreateHold(ctx, services.CreateHoldRequest{
		UserID: 7, EventID: 5, SeatIDs: []int64{12},
	})

	assert.ErrorIs(t, err, domain.ErrSeatTaken)
}

func TestCreateHold_CategorySoldOut(t *testing.T) {
	f := newHoldFixture(t)
	ctx := context.Background()

	category := standardCategory()
	category.MaxQuantity = 10

	f.events.On("GetEventByID", ctx, int64(5)).Return(openEvent(5), nil)
	f.tickets.On("TakenSeatIDs", ctx, int64(5), []int64{12}).Return(nil, nil)
	f.events.On("SeatForEvent", ctx, int64(5), int64(12)).Return(standardSeat("A1"), nil)
	f.events.On("ActiveCategoryBySeatType", ctx, int64(5), "Standard").Return(category, nil)
	f.tickets.On("SoldCountByCategory", ctx, int64(3)).Return(int64(10), nil)

	_, err := f.service.CreateHold(ctx, services.CreateHoldRequest{
		UserID: 7, EventID: 5, SeatIDs: []int64{12},
	})

	assert.ErrorIs(t, err, domain.ErrStateConflict)
	assert.Contains(t, err.Error(), "sold out")
}

func TestListSeats_CacheHit(t *testing.T) {
	f := newHoldFixture(t)
	ctx := context.Background()

	cached := []domain.SeatAvailability{{SeatID: 12, SeatCode: "A1", Taken: true}}
	f.cache.On("Get", ctx, int64(5)).Return(cached, true)

	seats, err := f.service.ListSeats(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, cached, seats)
}

func TestListSeats_CacheMissFillsCache(t *testing.T) {
	f := newHoldFixture(t)
	ctx := context.Background()

	fresh := []domain.SeatAvailability{{SeatID: 12, SeatCode: "A1"}}
	f.cache.On("Get", ctx, int64(5)).Return(nil, false)
	f.events.On("SeatsWithAvailability", ctx, int64(5)).Return(fresh, nil)
	f.cache.On("Set", ctx, int64(5), fresh).Return(nil)

	seats, err := f.service.ListSeats(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, fresh, seats)
}

func TestReleaseHolds(t *testing.T) {
	f := newHoldFixture(t)
	ctx := context.Background()

	f.tickets.On("DeleteByIDs", ctx, []int64{101}).Return(nil)
	f.cache.On("Invalidate", ctx, int64(5)).Return(nil)

	assert.NoError(t, f.service.ReleaseHolds(ctx, 5, []int64{101}))
}
