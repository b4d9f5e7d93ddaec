package service

import (
	"fmt"

	"github.com/villagebank/village-bank-service/internal/finance"
	"github.com/villagebank/village-bank-service/internal/models"
)

// RecordSaving records a deposit for a member, fixing its interest at deposit
// time from the cycle rate and the remaining months.
func (s *Service) RecordSaving(cycleID, userID string, amount float64, periodIndex int, createdBy string) (*models.Saving, error) {
	cycle, err := s.store.FindCycleByID(cycleID)
	if err != nil {
		return nil, err
	}
	if cycle.IsLocked {
		return nil, ErrCycleLocked
	}
	if amount < cycle.SavingMin || amount > cycle.SavingMax {
		return nil, fmt.Errorf("%w: must be between %.2f and %.2f", ErrInvalidAmount, cycle.SavingMin, cycle.SavingMax)
	}
	if periodIndex < 0 || periodIndex >= cycle.DurationMonths {
		return nil, fmt.Errorf("period index %d outside cycle duration of %d months", periodIndex, cycle.DurationMonths)
	}

	payments, err := s.store.ListPaymentsByCycle(cycleID)
	if err != nil {
		return nil, err
	}
	if !finance.IsMembershipPaid(userID, cycleID, payments) {
		return nil, ErrMembershipUnpaid
	}

	interest := finance.CalculateSavingInterest(amount, cycle.InterestRate, periodIndex, cycle.DurationMonths)
	saving := &models.Saving{
		CycleID:               cycleID,
		UserID:                userID,
		Amount:                amount,
		InterestPerMonth:      interest.InterestPerMonth,
		ExpectedInterestAtEnd: interest.ExpectedInterestAtEnd,
		PeriodIndex:           periodIndex,
		CreatedBy:             createdBy,
	}
	if err := s.store.CreateSaving(saving); err != nil {
		return nil, err
	}

	s.refreshCapital(cycleID)
	s.log.Infof("Saving recorded: %s, member %s, amount %.2f", saving.ID, userID, amount)

	if member, err := s.store.FindMemberByID(userID); err == nil {
		if err := s.notifier.SendSavingReceipt(member.Email, member.Name, amount, interest.ExpectedInterestAtEnd, cycle.Currency); err != nil {
			s.log.Errorf("Failed to send saving receipt to %s: %v", member.Email, err)
		}
	}

	return saving, nil
}

// IssueLoan issues a loan to a member, gated on their borrowing power:
// principal plus any outstanding loan balance must stay within the ceiling.
func (s *Service) IssueLoan(cycleID, userID string, amount, topUpAmount float64) (*models.Loan, error) {
	cycle, err := s.store.FindCycleByID(cycleID)
	if err != nil {
		return nil, err
	}
	if cycle.IsLocked {
		return nil, ErrCycleLocked
	}
	principal := amount + topUpAmount
	if principal <= 0 {
		return nil, ErrInvalidAmount
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
	if !finance.IsMembershipPaid(userID, cycleID, payments) {
		return nil, ErrMembershipUnpaid
	}

	var userSavings []models.Saving
	for _, sv := range savings {
		if sv.UserID == userID {
			userSavings = append(userSavings, sv)
		}
	}
	power := finance.BorrowingPower(userSavings, cycle.BorrowingLimitRatio)
	existing := finance.OutstandingLoan(userID, cycleID, loans, payments, *cycle, s.now())
	if principal+existing > power {
		return nil, fmt.Errorf("%w: max %.2f, outstanding %.2f", ErrOverLimit, power, existing)
	}

	loan := &models.Loan{
		CycleID:     cycleID,
		UserID:      userID,
		Amount:      amount,
		TopUpAmount: topUpAmount,
		Status:      models.LoanActive,
	}
	if err := s.store.CreateLoan(loan); err != nil {
		return nil, err
	}

	s.refreshCapital(cycleID)
	s.log.Infof("Loan issued: %s, member %s, principal %.2f", loan.ID, userID, principal)
	return loan, nil
}

// RecordPayment records a money-in event. Loan repayments trigger a status
// refresh for the payer's loans in the cycle.
func (s *Service) RecordPayment(cycleID, userID string, paymentType models.PaymentType, amount float64) (*models.Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	switch paymentType {
	case models.PaymentMembershipFee, models.PaymentPenalty, models.PaymentLossRecovery, models.PaymentLoanRepayment:
	default:
		return nil, fmt.Errorf("unknown payment type: %s", paymentType)
	}

	cycle, err := s.store.FindCycleByID(cycleID)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		CycleID: cycleID,
		UserID:  userID,
		Type:    paymentType,
		Amount:  amount,
	}
	if err := s.store.CreatePayment(payment); err != nil {
		return nil, err
	}

	s.refreshCapital(cycleID)
	s.log.Infof("Payment recorded: %s, member %s, type %s, amount %.2f", payment.ID, userID, paymentType, amount)

	if paymentType == models.PaymentLoanRepayment {
		if err := s.refreshCycleLoanStatuses(*cycle); err != nil {
			s.log.Errorf("Failed to refresh loan statuses for cycle %s: %v", cycleID, err)
		}
	}

	return payment, nil
}

// BookLossRecovery books a loss-sharing event for a cycle. When totals are not
// supplied by the operator they are derived from the interest lost on the
// cycle's current unborrowed capital, split evenly across members.
func (s *Service) BookLossRecovery(cycleID string, totalLoss, sharedPerUser float64) (*models.LossRecovery, error) {
	cycle, err := s.store.FindCycleByID(cycleID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListCycleMembers(cycleID)
	if err != nil {
		return nil, err
	}

	if totalLoss == 0 || sharedPerUser == 0 {
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
		unborrowed := finance.CycleCapital(cycleID, savings, loans, payments)
		if totalLoss == 0 {
			totalLoss = unborrowed * cycle.InterestRate
		}
		if sharedPerUser == 0 {
			sharedPerUser = finance.GroupLossRecovery(unborrowed, cycle.InterestRate, len(members))
		}
	}
	if totalLoss <= 0 || sharedPerUser <= 0 {
		return nil, fmt.Errorf("%w: nothing to recover", ErrInvalidAmount)
	}

	loss := &models.LossRecovery{
		CycleID:       cycleID,
		TotalLoss:     totalLoss,
		SharedPerUser: sharedPerUser,
	}
	if err := s.store.CreateLossRecovery(loss); err != nil {
		return nil, err
	}

	s.log.Infof("Loss recovery booked: %s, cycle %s, total %.2f, per member %.2f", loss.ID, cycleID, totalLoss, sharedPerUser)
	return loss, nil
}

// refreshCapital recomputes and caches a cycle's display capital. The cached
// value is cosmetic; failures only log.
func (s *Service) refreshCapital(cycleID string) {
	savings, err := s.store.ListSavingsByCycle(cycleID)
	if err != nil {
		s.log.Errorf("Failed to load savings for capital refresh: %v", err)
		return
	}
	loans, err := s.store.ListLoansByCycle(cycleID)
	if err != nil {
		s.log.Errorf("Failed to load loans for capital refresh: %v", err)
		return
	}
	payments, err := s.store.ListPaymentsByCycle(cycleID)
	if err != nil {
		s.log.Errorf("Failed to load payments for capital refresh: %v", err)
		return
	}

	capital := finance.CycleCapital(cycleID, savings, loans, payments)
	if err := s.store.UpdateCycleCapital(cycleID, capital); err != nil {
		s.log.Errorf("Failed to cache capital for cycle %s: %v", cycleID, err)
	}
}
