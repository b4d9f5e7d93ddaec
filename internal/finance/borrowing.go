package finance

import (
	"math"

	"github.com/villagebank/village-bank-service/internal/models"
)

// BorrowingPower computes a member's maximum loan ceiling from their savings.
// A limit ratio of zero means no cap and returns +Inf.
func BorrowingPower(userSavings []models.Saving, limitRatio float64) float64 {
	var totalSaved float64
	for _, s := range userSavings {
		totalSaved += s.Amount
	}
	if limitRatio == 0 {
		return math.Inf(1)
	}
	return totalSaved * limitRatio
}
