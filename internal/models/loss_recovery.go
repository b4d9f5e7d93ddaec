package models

import "time"

// LossRecovery represents one loss-sharing event for a cycle. SharedPerUser is
// a flat per-member liability, equal for all members at creation time.
type LossRecovery struct {
	ID            string    `json:"id"`
	CycleID       string    `json:"cycle_id"`
	TotalLoss     float64   `json:"total_loss"`
	SharedPerUser float64   `json:"shared_per_user"`
	CreatedAt     time.Time `json:"created_at"`
}
