package models

import "time"

// Cycle represents a time-boxed group savings-and-credit pool
type Cycle struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	InterestRate        float64   `json:"interest_rate"` // decimal fraction, e.g. 0.10
	DurationMonths      int       `json:"duration_months"`
	SavingMin           float64   `json:"saving_min"`
	SavingMax           float64   `json:"saving_max"`
	MembershipFee       float64   `json:"membership_fee"`
	BorrowingLimitRatio float64   `json:"borrowing_limit_ratio"`
	Capital             float64   `json:"capital"` // cached display value, not authoritative
	Currency            string    `json:"currency"`
	IsLocked            bool      `json:"is_locked"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
