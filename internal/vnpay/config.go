package vnpay

// Config carries the merchant credentials issued by the gateway portal.
// HashSecret signs and verifies every exchanged parameter set; it must never
// be logged.
type Config struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}
