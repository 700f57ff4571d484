package vnpay

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest describes one checkout redirect to the gateway.
type PaymentRequest struct {
	TxnRef    string
	Amount    decimal.Decimal // major units; the wire carries amount x100
	OrderInfo string
	ClientIP  string
}

var gatewayTZ = time.FixedZone("GMT+7", 7*60*60)

const dateLayout = "20060102150405"

// BuildPaymentURL assembles and signs the redirect URL the buyer is sent to.
// The parameter set is canonicalized and signed exactly the way callbacks are
// verified; the hash fields never participate in their own signature.
func BuildPaymentURL(cfg Config, req PaymentRequest, now time.Time) string {
	created := now.In(gatewayTZ)
	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    cfg.TmnCode,
		"vnp_Amount":     FormatMinor(req.Amount),
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     req.TxnRef,
		"vnp_OrderInfo":  req.OrderInfo,
		"vnp_OrderType":  "other",
		"vnp_Locale":     "vn",
		"vnp_ReturnUrl":  cfg.ReturnURL,
		"vnp_CreateDate": created.Format(dateLayout),
		"vnp_ExpireDate": created.Add(15 * time.Minute).Format(dateLayout),
		"vnp_IpAddr":     req.ClientIP,
	}

	query := HashData(params)
	signature := Sign(cfg.HashSecret, query)

	var b strings.Builder
	b.WriteString(cfg.PayURL)
	b.WriteByte('?')
	b.WriteString(query)
	b.WriteByte('&')
	b.WriteString(ParamSecureHash)
	b.WriteByte('=')
	b.WriteString(signature)
	return b.String()
}

// AmountFromMinor converts a gateway amount in minor units (x100) back to
// major units without floating point.
func AmountFromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// FormatMinor renders a major-unit amount in minor units for the wire.
func FormatMinor(amount decimal.Decimal) string {
	return strconv.FormatInt(amount.Mul(decimal.NewFromInt(100)).IntPart(), 10)
}
