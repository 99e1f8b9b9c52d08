package models

import "time"

const (
	BillingUnpaid = "unpaid"
	BillingPaid   = "paid"
)

func ValidBillingStatus(s string) bool {
	return s == BillingUnpaid || s == BillingPaid
}

// ค่าเทอมรายเดือน — 1 แถวต่อ (เด็ก, เดือน)
type MonthlyBilling struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	ChildID      uint       `json:"child_id" gorm:"not null;uniqueIndex:uniq_billing_child_month"`
	BillingMonth string     `json:"billing_month" gorm:"size:7;not null;uniqueIndex:uniq_billing_child_month;index:idx_billing_month_status"` // YYYY-MM
	Amount       float64    `json:"amount" gorm:"type:numeric(12,2);not null;default:0"`
	Status       string     `json:"status" gorm:"size:10;not null;default:'unpaid';index:idx_billing_month_status"`
	PaidAt       *time.Time `json:"paid_at"`
	Notes        string     `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
