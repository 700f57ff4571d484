package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// Parameter names excluded from the signed payload. The gateway appends the
// signature (and optionally its type) to the parameter set it signed, so both
// must be stripped before the canonical string is rebuilt.
const (
	ParamSecureHash     = "vnp_SecureHash"
	ParamSecureHashType = "vnp_SecureHashType"
)

// HashData builds the canonical signing string: field names sorted ascending,
// each non-empty value ASCII percent-encoded, joined as name=value with '&'.
// Empty values are skipped entirely, matching the gateway's reference
// implementation byte for byte.
func HashData(params map[string]string) string {
	names := make([]string, 0, len(params))
	for name, value := range params {
		if value == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(encodeValue(params[name]))
	}
	return b.String()
}

// encodeValue percent-encodes a value the way the gateway canonicalizes it
// (java.net.URLEncoder, US-ASCII): space becomes '+', '*' stays bare and '~'
// is escaped. Go's QueryEscape differs on exactly those last two bytes.
func encodeValue(v string) string {
	escaped := url.QueryEscape(v)
	escaped = strings.ReplaceAll(escaped, "%2A", "*")
	return strings.ReplaceAll(escaped, "~", "%7E")
}

// Sign computes HMAC-SHA512 over data with the shared secret, rendered as
// lowercase hex.
func Sign(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignParams canonicalizes params and signs the result.
func SignParams(secret string, params map[string]string) string {
	return Sign(secret, HashData(params))
}

// VerifySignature recomputes the signature over params (which must no longer
// contain the hash fields) and compares it to the supplied value in constant
// time. Any mismatch is a hard authentication failure.
func VerifySignature(secret string, params map[string]string, supplied string) bool {
	expected := SignParams(secret, params)
	return hmac.Equal([]byte(expected), []byte(supplied))
}
