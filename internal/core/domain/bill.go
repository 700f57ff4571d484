package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentGateway PaymentMethod = "VNPAY"
	PaymentWallet  PaymentMethod = "WALLET"
)

// Bill is created PAID at settlement time and never mutated afterwards.
// One bill covers every ticket of the same checkout batch.
type Bill struct {
	ID            int64
	UserID        int64
	TotalAmount   decimal.Decimal
	Currency      string
	PaymentMethod PaymentMethod
	PaymentStatus string
	CreatedAt     time.Time
}

func NewPaidBill(userID int64, amount decimal.Decimal, method PaymentMethod) *Bill {
	return &Bill{
		UserID:        userID,
		TotalAmount:   amount,
		Currency:      "VND",
		PaymentMethod: method,
		PaymentStatus: "PAID",
		CreatedAt:     time.Now(),
	}
}
