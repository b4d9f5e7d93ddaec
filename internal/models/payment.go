package models

import "time"

// PaymentType tags a money-in event by purpose
type PaymentType string

const (
	PaymentMembershipFee PaymentType = "MEMBERSHIP_FEE"
	PaymentPenalty       PaymentType = "PENALTY"
	PaymentLossRecovery  PaymentType = "LOSS_RECOVERY"
	PaymentLoanRepayment PaymentType = "LOAN_REPAYMENT"
)

// Payment represents a money-in event. Loan repayments are matched to loans
// by (user, cycle) only, never to a specific loan id.
type Payment struct {
	ID        string      `json:"id"`
	CycleID   string      `json:"cycle_id"`
	UserID    string      `json:"user_id"`
	Type      PaymentType `json:"type"`
	Amount    float64     `json:"amount"`
	CreatedAt time.Time   `json:"created_at"`
}
