package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/villagebank/village-bank-service/internal/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testCycle(rate float64) models.Cycle {
	return models.Cycle{
		ID:             "c1",
		InterestRate:   rate,
		DurationMonths: 6,
		Currency:       "ZMW",
	}
}

func repayment(userID string, amount float64) models.Payment {
	return models.Payment{
		ID:      "p-" + userID,
		CycleID: "c1",
		UserID:  userID,
		Type:    models.PaymentLoanRepayment,
		Amount:  amount,
	}
}

func TestLoanDetailsFreshLoan(t *testing.T) {
	loan := models.Loan{
		ID: "l1", CycleID: "c1", UserID: "u1",
		Amount: 800, TopUpAmount: 200,
		Status:    models.LoanActive,
		CreatedAt: testNow.Add(-24 * time.Hour),
	}

	d := CalculateLoanDetails(loan, testCycle(0.10), nil, testNow)

	assert.Equal(t, 1000.0, d.Principal)
	assert.Equal(t, 100.0, d.Interest)
	assert.Equal(t, 1100.0, d.Payable)
	assert.Equal(t, 1100.0, d.Balance)
	assert.Equal(t, models.LoanActive, d.Status)
	assert.False(t, d.IsOverdue)
}

func TestLoanDetailsFullyRepaid(t *testing.T) {
	loan := models.Loan{
		ID: "l1", CycleID: "c1", UserID: "u1",
		Amount: 800, TopUpAmount: 200,
		Status:    models.LoanActive,
		CreatedAt: testNow.Add(-24 * time.Hour),
	}

	d := CalculateLoanDetails(loan, testCycle(0.10), []models.Payment{repayment("u1", 1100)}, testNow)

	assert.Equal(t, 0.0, d.Balance)
	assert.Equal(t, models.LoanPaid, d.Status)
	assert.False(t, d.IsOverdue)
}

func TestLoanDetailsOverdue(t *testing.T) {
	loan := models.Loan{
		ID: "l1", CycleID: "c1", UserID: "u1",
		Amount: 800, TopUpAmount: 200,
		Status:    models.LoanActive,
		CreatedAt: testNow.Add(-31 * 24 * time.Hour),
	}

	d := CalculateLoanDetails(loan, testCycle(0.10), []models.Payment{repayment("u1", 1090)}, testNow)

	assert.Equal(t, 10.0, d.Balance)
	assert.True(t, d.IsOverdue)
	assert.Equal(t, models.LoanOverdue, d.Status)
}

func TestLoanDetailsPaidWinsOverOverdue(t *testing.T) {
	// A balance inside the epsilon settles the loan even past the 30-day
	// window.
	loan := models.Loan{
		ID: "l1", CycleID: "c1", UserID: "u1",
		Amount: 800, TopUpAmount: 200,
		Status:    models.LoanOverdue,
		CreatedAt: testNow.Add(-60 * 24 * time.Hour),
	}

	d := CalculateLoanDetails(loan, testCycle(0.10), []models.Payment{repayment("u1", 1099.995)}, testNow)

	assert.InDelta(t, 0.005, d.Balance, 1e-9)
	assert.Equal(t, models.LoanPaid, d.Status)
	assert.False(t, d.IsOverdue)
}

func TestLoanDetailsOverdueExactlyAtWindow(t *testing.T) {
	loan := models.Loan{
		ID: "l1", CycleID: "c1", UserID: "u1",
		Amount:    500,
		Status:    models.LoanActive,
		CreatedAt: testNow.Add(-30 * 24 * time.Hour),
	}

	// now == createdAt + 30d is not yet past the window
	d := CalculateLoanDetails(loan, testCycle(0.10), nil, testNow)
	assert.False(t, d.IsOverdue)

	d = CalculateLoanDetails(loan, testCycle(0.10), nil, testNow.Add(time.Second))
	assert.True(t, d.IsOverdue)
}

func TestLoanDetailsRepaymentsPooledPerUser(t *testing.T) {
	// Repayments by another user, or tagged with another type, never count.
	loan := models.Loan{
		ID: "l1", CycleID: "c1", UserID: "u1",
		Amount:    1000,
		Status:    models.LoanActive,
		CreatedAt: testNow.Add(-24 * time.Hour),
	}
	payments := []models.Payment{
		repayment("u2", 500),
		{ID: "p3", CycleID: "c1", UserID: "u1", Type: models.PaymentMembershipFee, Amount: 50},
		{ID: "p4", CycleID: "other", UserID: "u1", Type: models.PaymentLoanRepayment, Amount: 300},
		repayment("u1", 400),
	}

	d := CalculateLoanDetails(loan, testCycle(0.10), payments, testNow)

	assert.Equal(t, 400.0, d.TotalRepaid)
	assert.Equal(t, 700.0, d.Balance)
}

func TestLoanDetailsBalanceClampedAtZero(t *testing.T) {
	loan := models.Loan{
		ID: "l1", CycleID: "c1", UserID: "u1",
		Amount:    100,
		Status:    models.LoanActive,
		CreatedAt: testNow,
	}

	d := CalculateLoanDetails(loan, testCycle(0.10), []models.Payment{repayment("u1", 5000)}, testNow)

	assert.Equal(t, 0.0, d.Balance)
	assert.Equal(t, models.LoanPaid, d.Status)
}

func TestLoanDetailsMonotonicRepayment(t *testing.T) {
	loan := models.Loan{
		ID: "l1", CycleID: "c1", UserID: "u1",
		Amount: 800, TopUpAmount: 200,
		Status:    models.LoanActive,
		CreatedAt: testNow.Add(-24 * time.Hour),
	}

	prev := CalculateLoanDetails(loan, testCycle(0.10), nil, testNow)
	for _, repaid := range []float64{100, 500, 1000, 1099, 1100, 2000} {
		d := CalculateLoanDetails(loan, testCycle(0.10), []models.Payment{repayment("u1", repaid)}, testNow)
		assert.LessOrEqual(t, d.Balance, prev.Balance, "repaid=%v", repaid)
		if prev.Status == models.LoanPaid {
			assert.Equal(t, models.LoanPaid, d.Status, "repaid=%v", repaid)
		}
		prev = d
	}
}

func TestLoanDetailsEmptyStatusDefaultsToActive(t *testing.T) {
	loan := models.Loan{
		ID: "l1", CycleID: "c1", UserID: "u1",
		Amount:    100,
		CreatedAt: testNow,
	}

	d := CalculateLoanDetails(loan, testCycle(0.10), nil, testNow)

	assert.Equal(t, models.LoanActive, d.Status)
}

func TestOutstandingLoanSkipsPaidLoans(t *testing.T) {
	loans := []models.Loan{
		{ID: "l1", CycleID: "c1", UserID: "u1", Amount: 1000, Status: models.LoanActive, CreatedAt: testNow},
		{ID: "l2", CycleID: "c1", UserID: "u1", Amount: 500, Status: models.LoanPaid, CreatedAt: testNow},
		{ID: "l3", CycleID: "c1", UserID: "u2", Amount: 700, Status: models.LoanActive, CreatedAt: testNow},
	}

	got := OutstandingLoan("u1", "c1", loans, nil, testCycle(0.10), testNow)

	assert.Equal(t, 1100.0, got)
}

func TestOutstandingLoanPoolsRepayments(t *testing.T) {
	// Current behavior: with two outstanding loans, the pooled repayment
	// counts against each loan's full balance independently.
	loans := []models.Loan{
		{ID: "l1", CycleID: "c1", UserID: "u1", Amount: 1000, Status: models.LoanActive, CreatedAt: testNow},
		{ID: "l2", CycleID: "c1", UserID: "u1", Amount: 1000, Status: models.LoanActive, CreatedAt: testNow},
	}
	payments := []models.Payment{repayment("u1", 600)}

	got := OutstandingLoan("u1", "c1", loans, payments, testCycle(0.10), testNow)

	// each loan: payable 1100, balance 500
	assert.Equal(t, 1000.0, got)
}
