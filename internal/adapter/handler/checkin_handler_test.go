package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/event_ticketing/internal/adapter/handler"
	"github.com/srgjo27/event_ticketing/internal/config"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports/mocks"
	"github.com/srgjo27/event_ticketing/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCheckinServer(t *testing.T) (*echo.Echo, *mocks.TicketRepository, *mocks.EventRepository) {
	tickets := mocks.NewTicketRepository(t)
	events := mocks.NewEventRepository(t)

	svc := services.NewCheckinService(tickets, events, config.GateConfig{
		CheckinOpensBefore:  2 * time.Hour,
		CheckoutClosesAfter: 1 * time.Hour,
	})

	e := echo.New()
	handler.NewCheckinHandler(svc).Register(e.Group("/api"))

	return e, tickets, events
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCheckInEndpoint_FullBatchSucceeds(t *testing.T) {
	e, tickets, events := newCheckinServer(t)

	event := &domain.Event{
		ID:        5,
		Title:     "Live Show",
		Status:    domain.EventOpen,
		StartTime: time.Now().Add(-1 * time.Hour),
		EndTime:   time.Now().Add(3 * time.Hour),
	}

	tickets.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Ticket{ID: 1, EventID: 5, Status: domain.TicketBooked}, nil)
	tickets.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.Ticket{ID: 2, EventID: 5, Status: domain.TicketBooked}, nil)
	events.On("GetEventByID", mock.Anything, int64(5)).Return(event, nil)
	tickets.On("CheckIn", mock.Anything, mock.AnythingOfType("int64"), mock.AnythingOfType("time.Time")).Return(nil)

	rec := postJSON(e, "/api/staff/checkin", `{"qrContent":"TICKETS:1,2"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result services.BatchScanResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalTickets)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Zero(t, result.FailCount)
}

func TestCheckInEndpoint_PartialBatchIs400(t *testing.T) {
	e, tickets, events := newCheckinServer(t)

	event := &domain.Event{
		ID:        5,
		Status:    domain.EventOpen,
		StartTime: time.Now().Add(-1 * time.Hour),
		EndTime:   time.Now().Add(3 * time.Hour),
	}

	tickets.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Ticket{ID: 1, EventID: 5, Status: domain.TicketBooked}, nil)
	tickets.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.Ticket{ID: 2, EventID: 5, Status: domain.TicketCheckedIn}, nil)
	events.On("GetEventByID", mock.Anything, int64(5)).Return(event, nil)
	tickets.On("CheckIn", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(nil)

	rec := postJSON(e, "/api/staff/checkin", `{"qrContent":"TICKETS:1,2"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var result services.BatchScanResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailCount)
	require.Len(t, result.Results, 2)
}

func TestCheckInEndpoint_GarbagePayloadIs400(t *testing.T) {
	e, _, _ := newCheckinServer(t)

	rec := postJSON(e, "/api/staff/checkin", `{"qrContent":"??"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckOutEndpoint_Success(t *testing.T) {
	e, tickets, events := newCheckinServer(t)

	event := &domain.Event{
		ID:        5,
		Status:    domain.EventOpen,
		StartTime: time.Now().Add(-2 * time.Hour),
		EndTime:   time.Now().Add(1 * time.Hour),
	}

	tickets.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Ticket{ID: 1, EventID: 5, Status: domain.TicketCheckedIn}, nil)
	events.On("GetEventByID", mock.Anything, int64(5)).Return(event, nil)
	tickets.On("CheckOut", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(nil)

	rec := postJSON(e, "/api/staff/checkout", `{"qrContent":"1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}
