package vnpay

import (
	"testing"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderInfo_EncodeParseRoundTrip(t *testing.T) {
	original := &OrderInfo{
		UserID:          7,
		EventID:         5,
		SeatIDs:         []int64{12, 13, 14},
		TicketIDs:       []int64{101, 102, 103},
		CategoryIDsUsed: []int64{3},
	}

	parsed, err := ParseOrderInfo(original.Encode())

	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestParseOrderInfo_CategoryListOptional(t *testing.T) {
	parsed, err := ParseOrderInfo("userId=7&eventId=5&seatIds=12&tempTicketIds=101&orderType=buyTicket")

	require.NoError(t, err)
	assert.Nil(t, parsed.CategoryIDsUsed)
	assert.Equal(t, []int64{12}, parsed.SeatIDs)
}

func TestParseOrderInfo_SplitsOnFirstEqualsOnly(t *testing.T) {
	// A value containing '=' must not shift the remaining fields.
	parsed, err := ParseOrderInfo("userId=7&eventId=5&seatIds=12&tempTicketIds=101&orderType=a=b")

	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)
}

func TestParseOrderInfo_MissingRequiredField(t *testing.T) {
	cases := map[string]string{
		"userId":        "eventId=5&seatIds=12&tempTicketIds=101",
		"eventId":       "userId=7&seatIds=12&tempTicketIds=101",
		"seatIds":       "userId=7&eventId=5&tempTicketIds=101",
		"tempTicketIds": "userId=7&eventId=5&seatIds=12",
	}
	for missing, raw := range cases {
		t.Run(missing, func(t *testing.T) {
			_, err := ParseOrderInfo(raw)
			assert.ErrorIs(t, err, domain.ErrOrderInfoMalformed)
		})
	}
}

func TestParseOrderInfo_NonNumericID(t *testing.T) {
	_, err := ParseOrderInfo("userId=abc&eventId=5&seatIds=12&tempTicketIds=101")

	assert.ErrorIs(t, err, domain.ErrOrderInfoMalformed)
}

func TestParseOrderInfo_EmptyInput(t *testing.T) {
	_, err := ParseOrderInfo("")

	assert.ErrorIs(t, err, domain.ErrOrderInfoMalformed)
}
