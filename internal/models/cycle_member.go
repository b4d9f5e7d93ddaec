package models

import "time"

// CycleMember links a member to a cycle they participate in
type CycleMember struct {
	CycleID  string    `json:"cycle_id"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}
