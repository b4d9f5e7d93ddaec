package finance

import (
	"math"
	"time"

	"github.com/villagebank/village-bank-service/internal/models"
)

// paidEpsilon absorbs floating-point noise when deciding a loan is settled.
const paidEpsilon = 0.01

// overdueAfter is the fixed repayment window for every loan, regardless of
// the cycle's configured duration.
const overdueAfter = 30 * 24 * time.Hour

// LoanDetails is the full derived picture of one loan.
type LoanDetails struct {
	Principal   float64           `json:"principal"`
	Interest    float64           `json:"interest"`
	Payable     float64           `json:"payable"`
	Balance     float64           `json:"balance"`
	Status      models.LoanStatus `json:"status"`
	IsOverdue   bool              `json:"is_overdue"`
	TotalRepaid float64           `json:"total_repaid"`
}

// CalculateLoanDetails derives a loan's financials and authoritative status.
// Repayments are pooled per (user, cycle): every LOAN_REPAYMENT payment by the
// borrower in the loan's cycle counts against it, with no per-loan matching.
// Loans accrue flat interest for exactly one period.
func CalculateLoanDetails(loan models.Loan, cycle models.Cycle, payments []models.Payment, now time.Time) LoanDetails {
	principal := loan.Amount + loan.TopUpAmount
	interest := principal * cycle.InterestRate
	payable := principal + interest

	var totalRepaid float64
	for _, p := range payments {
		if p.UserID == loan.UserID && p.CycleID == loan.CycleID && p.Type == models.PaymentLoanRepayment {
			totalRepaid += p.Amount
		}
	}

	balance := math.Max(0, payable-totalRepaid)

	isPaid := balance <= paidEpsilon
	isOverdue := !isPaid && now.After(loan.CreatedAt.Add(overdueAfter))

	status := loan.Status
	if status == "" {
		status = models.LoanActive
	}
	if isPaid {
		status = models.LoanPaid
	} else if isOverdue && status != models.LoanPaid {
		status = models.LoanOverdue
	}

	return LoanDetails{
		Principal:   principal,
		Interest:    interest,
		Payable:     payable,
		Balance:     balance,
		Status:      status,
		IsOverdue:   isOverdue,
		TotalRepaid: totalRepaid,
	}
}

// OutstandingLoan sums the balances of a member's unsettled loans in a cycle.
func OutstandingLoan(userID, cycleID string, loans []models.Loan, payments []models.Payment, cycle models.Cycle, now time.Time) float64 {
	var total float64
	for _, l := range loans {
		if l.UserID != userID || l.CycleID != cycleID || l.Status == models.LoanPaid {
			continue
		}
		total += CalculateLoanDetails(l, cycle, payments, now).Balance
	}
	return total
}
