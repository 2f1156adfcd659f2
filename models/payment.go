package models

import "time"

// PaymentStatus — settlement is simulated, so SUCCESS is the only
// status produced in practice.
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
)

// Payment is the settlement record for exactly one order. The unique
// index on OrderID is the authoritative one-payment-per-order guard.
type Payment struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	OrderID       uint          `json:"order_id" gorm:"uniqueIndex;not null"`
	UserID        uint          `json:"user_id" gorm:"not null"`
	Amount        float64       `json:"amount" gorm:"not null"`
	Status        PaymentStatus `json:"status" gorm:"not null"`
	Method        string        `json:"method" gorm:"not null"`
	TransactionID string        `json:"transaction_id" gorm:"uniqueIndex;not null"`
	CreatedAt     time.Time     `json:"created_at"`
}
