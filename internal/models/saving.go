package models

import "time"

// Saving represents a single deposit event within a cycle
type Saving struct {
	ID                    string    `json:"id"`
	CycleID               string    `json:"cycle_id"`
	UserID                string    `json:"user_id"`
	Amount                float64   `json:"amount"`
	InterestPerMonth      float64   `json:"interest_per_month"`
	ExpectedInterestAtEnd float64   `json:"expected_interest_at_end"`
	PeriodIndex           int       `json:"period_index"` // 0-based month offset within the cycle
	CreatedAt             time.Time `json:"created_at"`
	LastUpdatedAt         time.Time `json:"last_updated_at"`
	CreatedBy             string    `json:"created_by"`
}
