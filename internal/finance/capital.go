package finance

import (
	"math"

	"github.com/villagebank/village-bank-service/internal/models"
)

// CycleCapital computes a cycle's current liquid pool:
// (total savings + total payments) - total loans disbursed, clamped at zero.
func CycleCapital(cycleID string, savings []models.Saving, loans []models.Loan, payments []models.Payment) float64 {
	var totalSavings, totalPayments, totalDisbursed float64

	for _, s := range savings {
		if s.CycleID == cycleID {
			totalSavings += s.Amount
		}
	}
	for _, p := range payments {
		if p.CycleID == cycleID {
			totalPayments += p.Amount
		}
	}
	for _, l := range loans {
		if l.CycleID == cycleID {
			totalDisbursed += l.Amount + l.TopUpAmount
		}
	}

	return math.Max(0, totalSavings+totalPayments-totalDisbursed)
}
