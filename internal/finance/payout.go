package finance

import (
	"math"
	"time"

	"github.com/villagebank/village-bank-service/internal/models"
)

// Payout is a member's settlement picture at any point in a cycle.
// NetPayout may be negative when the member owes the group more than they are
// owed.
type Payout struct {
	TotalSaved    float64 `json:"total_saved"`
	TotalInterest float64 `json:"total_interest"`
	LoanBalance   float64 `json:"loan_balance"`
	UnpaidLoss    float64 `json:"unpaid_loss"`
	NetPayout     float64 `json:"net_payout"`
}

// CalculatePayout composes a member's settlement from records already filtered
// to that member and cycle.
func CalculatePayout(cycle models.Cycle, userSavings []models.Saving, userLoans []models.Loan, userPayments []models.Payment, userLosses []models.LossRecovery, now time.Time) Payout {
	var totalSaved, totalInterest float64
	for _, s := range userSavings {
		totalSaved += s.Amount
		totalInterest += s.ExpectedInterestAtEnd
	}

	var loanBalance float64
	for _, l := range userLoans {
		loanBalance += CalculateLoanDetails(l, cycle, userPayments, now).Balance
	}

	var lossLiability, lossPaid float64
	for _, l := range userLosses {
		lossLiability += l.SharedPerUser
	}
	for _, p := range userPayments {
		if p.Type == models.PaymentLossRecovery {
			lossPaid += p.Amount
		}
	}
	unpaidLoss := math.Max(0, lossLiability-lossPaid)

	return Payout{
		TotalSaved:    totalSaved,
		TotalInterest: totalInterest,
		LoanBalance:   loanBalance,
		UnpaidLoss:    unpaidLoss,
		NetPayout:     (totalSaved + totalInterest) - (loanBalance + unpaidLoss),
	}
}

// MemberShareOut filters the full record snapshot down to one member and
// computes their payout for the cycle.
func MemberShareOut(userID string, cycle models.Cycle, allSavings []models.Saving, allLoans []models.Loan, allPayments []models.Payment, allLosses []models.LossRecovery, now time.Time) Payout {
	var userSavings []models.Saving
	for _, s := range allSavings {
		if s.UserID == userID && s.CycleID == cycle.ID {
			userSavings = append(userSavings, s)
		}
	}

	var userLoans []models.Loan
	for _, l := range allLoans {
		if l.UserID == userID && l.CycleID == cycle.ID {
			userLoans = append(userLoans, l)
		}
	}

	var userPayments []models.Payment
	for _, p := range allPayments {
		if p.UserID == userID && p.CycleID == cycle.ID {
			userPayments = append(userPayments, p)
		}
	}

	var userLosses []models.LossRecovery
	for _, l := range allLosses {
		if l.CycleID == cycle.ID {
			userLosses = append(userLosses, l)
		}
	}

	return CalculatePayout(cycle, userSavings, userLoans, userPayments, userLosses, now)
}
