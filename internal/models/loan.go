package models

import "time"

// LoanStatus is the lifecycle state of a loan
type LoanStatus string

const (
	LoanActive  LoanStatus = "ACTIVE"
	LoanPaid    LoanStatus = "PAID"
	LoanOverdue LoanStatus = "OVERDUE"
)

// Loan represents a loan issued against a member's savings.
// Status as stored is a cache; readers recompute it from balance and age.
type Loan struct {
	ID           string     `json:"id"`
	CycleID      string     `json:"cycle_id"`
	UserID       string     `json:"user_id"`
	Amount       float64    `json:"amount"`
	TopUpAmount  float64    `json:"top_up_amount"`
	Status       LoanStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	LastEditedAt time.Time  `json:"last_edited_at"`
}
