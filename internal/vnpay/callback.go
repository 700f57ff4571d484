package vnpay

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

const (
	paramAmount       = "vnp_Amount"
	paramOrderInfo    = "vnp_OrderInfo"
	paramResponseCode = "vnp_ResponseCode"
	paramTxnRef       = "vnp_TxnRef"

	// ResponseCodeSuccess is the gateway's "payment completed" code; every
	// other code terminates the attempt without being a system error.
	ResponseCodeSuccess = "00"
)

// Callback is an authenticated, parsed gateway return. It is only ever
// constructed by VerifyCallback, so holding one proves the signature checked
// out.
type Callback struct {
	TxnRef       string
	ResponseCode string
	AmountMinor  int64
	OrderInfoRaw string
}

func (c *Callback) Declined() bool {
	return c.ResponseCode != ResponseCodeSuccess
}

// VerifyCallback authenticates an inbound parameter set and parses the
// payment fields. The flow is strict: signature first, everything else after.
// If a parameter repeats, the first value wins (the value the gateway signed).
func VerifyCallback(secret string, values url.Values) (*Callback, error) {
	params := make(map[string]string, len(values))
	for name, vs := range values {
		if len(vs) > 0 {
			params[name] = vs[0]
		}
	}

	supplied := params[ParamSecureHash]
	delete(params, ParamSecureHash)
	delete(params, ParamSecureHashType)

	if supplied == "" || !VerifySignature(secret, params, supplied) {
		return nil, domain.ErrSignatureInvalid
	}

	cb := &Callback{
		TxnRef:       params[paramTxnRef],
		ResponseCode: params[paramResponseCode],
	}

	if raw := params[paramAmount]; raw != "" {
		minor, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad amount %q", domain.ErrOrderInfoMalformed, raw)
		}
		cb.AmountMinor = minor
	}

	// The order info arrives URL-encoded inside the already-decoded
	// parameter value on some gateway versions; decode defensively and fall
	// back to the raw value when it is not encoded.
	raw := params[paramOrderInfo]
	if decoded, err := url.QueryUnescape(raw); err == nil {
		cb.OrderInfoRaw = decoded
	} else {
		cb.OrderInfoRaw = raw
	}

	return cb, nil
}

// OrderInfo parses the callback's order reference.
func (c *Callback) OrderInfo() (*OrderInfo, error) {
	return ParseOrderInfo(c.OrderInfoRaw)
}
