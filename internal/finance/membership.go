package finance

import "github.com/villagebank/village-bank-service/internal/models"

// IsMembershipPaid reports whether the member has paid the membership fee for
// the cycle.
func IsMembershipPaid(userID, cycleID string, payments []models.Payment) bool {
	for _, p := range payments {
		if p.UserID == userID && p.CycleID == cycleID && p.Type == models.PaymentMembershipFee {
			return true
		}
	}
	return false
}
