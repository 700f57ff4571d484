package vnpay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

// OrderInfo is the opaque order reference that travels to the gateway and
// back. Wire format: flat key=value pairs joined with '&'. Values may contain
// '=' themselves, so each pair is split on the first '=' only; this is not a
// query string and must not be parsed as one.
//
// Key names are kept bit-compatible with the original merchant integration so
// in-flight payments survive a deploy.
type OrderInfo struct {
	UserID          int64
	EventID         int64
	SeatIDs         []int64
	TicketIDs       []int64
	CategoryIDsUsed []int64
}

const (
	keyUserID          = "userId"
	keyEventID         = "eventId"
	keySeatIDs         = "seatIds"
	keyTicketIDs       = "tempTicketIds"
	keyCategoryIDsUsed = "categoryTicketIdsUsed"
	keyOrderType       = "orderType"
)

// Encode renders the order reference in wire format.
func (o *OrderInfo) Encode() string {
	pairs := []string{
		keyUserID + "=" + strconv.FormatInt(o.UserID, 10),
		keyEventID + "=" + strconv.FormatInt(o.EventID, 10),
		keySeatIDs + "=" + joinIDs(o.SeatIDs),
		keyTicketIDs + "=" + joinIDs(o.TicketIDs),
	}
	if len(o.CategoryIDsUsed) > 0 {
		pairs = append(pairs, keyCategoryIDsUsed+"="+joinIDs(o.CategoryIDsUsed))
	}
	pairs = append(pairs, keyOrderType+"=buyTicket")
	return strings.Join(pairs, "&")
}

// ParseOrderInfo parses the wire format back into a typed structure,
// rejecting anything with missing or unparseable required fields before any
// business logic can run on it.
func ParseOrderInfo(raw string) (*OrderInfo, error) {
	fields := map[string]string{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		fields[kv[0]] = kv[1]
	}

	userID, err := requiredID(fields, keyUserID)
	if err != nil {
		return nil, err
	}
	eventID, err := requiredID(fields, keyEventID)
	if err != nil {
		return nil, err
	}
	seatIDs, err := requiredIDList(fields, keySeatIDs)
	if err != nil {
		return nil, err
	}
	ticketIDs, err := requiredIDList(fields, keyTicketIDs)
	if err != nil {
		return nil, err
	}

	info := &OrderInfo{
		UserID:    userID,
		EventID:   eventID,
		SeatIDs:   seatIDs,
		TicketIDs: ticketIDs,
	}
	if v := strings.TrimSpace(fields[keyCategoryIDsUsed]); v != "" {
		ids, err := splitIDs(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrOrderInfoMalformed, keyCategoryIDsUsed, err)
		}
		info.CategoryIDsUsed = ids
	}
	return info, nil
}

func requiredID(fields map[string]string, key string) (int64, error) {
	v := strings.TrimSpace(fields[key])
	if v == "" {
		return 0, fmt.Errorf("%w: missing %s", domain.ErrOrderInfoMalformed, key)
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrOrderInfoMalformed, key, err)
	}
	return id, nil
}

func requiredIDList(fields map[string]string, key string) ([]int64, error) {
	v := strings.TrimSpace(fields[key])
	if v == "" {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrOrderInfoMalformed, key)
	}
	ids, err := splitIDs(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrOrderInfoMalformed, key, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: empty %s", domain.ErrOrderInfoMalformed, key)
	}
	return ids, nil
}

func splitIDs(v string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
