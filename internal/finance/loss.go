package finance

import (
	"math"

	"github.com/villagebank/village-bank-service/internal/models"
)

// OutstandingLoss computes a member's unpaid share of a cycle's loss events.
// Liability is the flat sum of every loss event booked for the cycle, applied
// uniformly regardless of when the member joined.
func OutstandingLoss(userID, cycleID string, losses []models.LossRecovery, payments []models.Payment) float64 {
	var liability float64
	for _, l := range losses {
		if l.CycleID == cycleID {
			liability += l.SharedPerUser
		}
	}

	var paid float64
	for _, p := range payments {
		if p.UserID == userID && p.CycleID == cycleID && p.Type == models.PaymentLossRecovery {
			paid += p.Amount
		}
	}

	return math.Max(0, liability-paid)
}

// GroupLossRecovery computes the even per-member split of interest lost on
// capital that sat unborrowed. Advisory input for booking a loss event.
func GroupLossRecovery(unborrowedCapital, interestRate float64, memberCount int) float64 {
	if memberCount == 0 {
		return 0
	}
	totalLostInterest := unborrowedCapital * interestRate
	return totalLostInterest / float64(memberCount)
}
