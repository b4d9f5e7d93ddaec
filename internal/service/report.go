package service

import (
	"github.com/villagebank/village-bank-service/internal/finance"
	"github.com/villagebank/village-bank-service/internal/models"
)

// CycleSummary is the operator's running picture of one cycle.
type CycleSummary struct {
	Cycle         models.Cycle `json:"cycle"`
	Capital       float64      `json:"capital"`
	MemberCount   int          `json:"member_count"`
	TotalSavings  float64      `json:"total_savings"`
	TotalLoaned   float64      `json:"total_loaned"`
	TotalPayments float64      `json:"total_payments"`
}

// ShareOutRow is one member's settlement line in the share-out report.
type ShareOutRow struct {
	UserID string         `json:"user_id"`
	Payout finance.Payout `json:"payout"`
}

// GetCycleSummary computes the current financial picture of a cycle from a
// fresh record snapshot.
func (s *Service) GetCycleSummary(cycleID string) (*CycleSummary, error) {
	cycle, err := s.store.FindCycleByID(cycleID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListCycleMembers(cycleID)
	if err != nil {
		return nil, err
	}
	savings, err := s.store.ListSavingsByCycle(cycleID)
	if err != nil {
		return nil, err
	}
	loans, err := s.store.ListLoansByCycle(cycleID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByCycle(cycleID)
	if err != nil {
		return nil, err
	}

	summary := &CycleSummary{
		Cycle:       *cycle,
		Capital:     finance.CycleCapital(cycleID, savings, loans, payments),
		MemberCount: len(members),
	}
	for _, sv := range savings {
		summary.TotalSavings += sv.Amount
	}
	for _, l := range loans {
		summary.TotalLoaned += l.Amount + l.TopUpAmount
	}
	for _, p := range payments {
		summary.TotalPayments += p.Amount
	}
	return summary, nil
}

// GetLoanDetails derives a loan's current financials and authoritative status.
func (s *Service) GetLoanDetails(loanID string) (*finance.LoanDetails, error) {
	loan, err := s.store.FindLoanByID(loanID)
	if err != nil {
		return nil, err
	}
	cycle, err := s.store.FindCycleByID(loan.CycleID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByCycle(loan.CycleID)
	if err != nil {
		return nil, err
	}

	details := finance.CalculateLoanDetails(*loan, *cycle, payments, s.now())
	return &details, nil
}

// GetCycleShareOut computes the full settlement table for a cycle, one row per
// member.
func (s *Service) GetCycleShareOut(cycleID string) ([]ShareOutRow, error) {
	cycle, err := s.store.FindCycleByID(cycleID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListCycleMembers(cycleID)
	if err != nil {
		return nil, err
	}
	savings, err := s.store.ListSavingsByCycle(cycleID)
	if err != nil {
		return nil, err
	}
	loans, err := s.store.ListLoansByCycle(cycleID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByCycle(cycleID)
	if err != nil {
		return nil, err
	}
	losses, err := s.store.ListLossesByCycle(cycleID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows := make([]ShareOutRow, 0, len(members))
	for _, m := range members {
		rows = append(rows, ShareOutRow{
			UserID: m.UserID,
			Payout: finance.MemberShareOut(m.UserID, *cycle, savings, loans, payments, losses, now),
		})
	}
	return rows, nil
}
