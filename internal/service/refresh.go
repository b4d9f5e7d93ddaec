package service

import (
	"github.com/villagebank/village-bank-service/internal/finance"
	"github.com/villagebank/village-bank-service/internal/models"
)

// refreshCycleLoanStatuses recomputes and persists loan statuses for one
// cycle, typically after a repayment lands.
func (s *Service) refreshCycleLoanStatuses(cycle models.Cycle) error {
	loans, err := s.store.ListLoansByCycle(cycle.ID)
	if err != nil {
		return err
	}
	payments, err := s.store.ListPaymentsByCycle(cycle.ID)
	if err != nil {
		return err
	}

	now := s.now()
	for _, loan := range loans {
		details := finance.CalculateLoanDetails(loan, cycle, payments, now)
		if details.Status == loan.Status {
			continue
		}
		if err := s.store.UpdateLoanStatus(loan.ID, details.Status); err != nil {
			return err
		}
		s.log.Infof("Loan %s status %s -> %s", loan.ID, loan.Status, details.Status)
	}
	return nil
}

// RefreshLoanStatuses recomputes the status of every unsettled loan, persists
// transitions, and emails overdue reminders. Run nightly by the scheduler;
// stored status stays a cache, read paths always recompute.
func (s *Service) RefreshLoanStatuses() error {
	loans, err := s.store.ListUnsettledLoans()
	if err != nil {
		return err
	}

	now := s.now()
	cycles := make(map[string]*models.Cycle)
	paymentsByCycle := make(map[string][]models.Payment)

	for _, loan := range loans {
		cycle, ok := cycles[loan.CycleID]
		if !ok {
			cycle, err = s.store.FindCycleByID(loan.CycleID)
			if err != nil {
				s.log.Errorf("Skipping loan %s, cycle %s not loadable: %v", loan.ID, loan.CycleID, err)
				continue
			}
			payments, err := s.store.ListPaymentsByCycle(loan.CycleID)
			if err != nil {
				s.log.Errorf("Skipping loan %s, payments for cycle %s not loadable: %v", loan.ID, loan.CycleID, err)
				continue
			}
			cycles[loan.CycleID] = cycle
			paymentsByCycle[loan.CycleID] = payments
		}

		details := finance.CalculateLoanDetails(loan, *cycle, paymentsByCycle[loan.CycleID], now)
		if details.Status != loan.Status {
			if err := s.store.UpdateLoanStatus(loan.ID, details.Status); err != nil {
				s.log.Errorf("Failed to persist status for loan %s: %v", loan.ID, err)
				continue
			}
			s.log.Infof("Loan %s status %s -> %s", loan.ID, loan.Status, details.Status)
		}

		if details.IsOverdue {
			member, err := s.store.FindMemberByID(loan.UserID)
			if err != nil {
				s.log.Errorf("Overdue reminder skipped, member %s not found: %v", loan.UserID, err)
				continue
			}
			if err := s.notifier.SendOverdueReminder(member.Email, member.Name, loan.CreatedAt, details.Balance, cycle.Currency); err != nil {
				s.log.Errorf("Failed to send overdue reminder to %s: %v", member.Email, err)
			}
		}
	}

	s.log.Infof("Loan status refresh completed, %d unsettled loans checked", len(loans))
	return nil
}
