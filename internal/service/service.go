package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/villagebank/village-bank-service/internal/config"
	"github.com/villagebank/village-bank-service/internal/models"
)

var (
	ErrCycleLocked      = errors.New("cycle is locked")
	ErrMembershipUnpaid = errors.New("membership fee not paid")
	ErrOverLimit        = errors.New("loan exceeds borrowing power")
	ErrInvalidAmount    = errors.New("invalid amount")
)

// Store is the record store the service reads snapshots from and appends to.
// Implemented by repository.Repository.
type Store interface {
	CreateMember(member *models.Member) error
	FindMemberByID(id string) (*models.Member, error)

	CreateCycle(cycle *models.Cycle) error
	FindCycleByID(id string) (*models.Cycle, error)
	ListCycles() ([]models.Cycle, error)
	SetCycleLocked(id string, locked bool) error
	UpdateCycleCapital(id string, capital float64) error

	AddCycleMember(cm *models.CycleMember) error
	ListCycleMembers(cycleID string) ([]models.CycleMember, error)

	CreateSaving(saving *models.Saving) error
	ListSavingsByCycle(cycleID string) ([]models.Saving, error)

	CreateLoan(loan *models.Loan) error
	FindLoanByID(id string) (*models.Loan, error)
	ListLoansByCycle(cycleID string) ([]models.Loan, error)
	ListUnsettledLoans() ([]models.Loan, error)
	UpdateLoanStatus(id string, status models.LoanStatus) error

	CreatePayment(payment *models.Payment) error
	ListPaymentsByCycle(cycleID string) ([]models.Payment, error)

	CreateLossRecovery(loss *models.LossRecovery) error
	ListLossesByCycle(cycleID string) ([]models.LossRecovery, error)
}

// Notifier sends member-facing notifications. Implemented by email.Sender.
type Notifier interface {
	SendOverdueReminder(to, name string, loanCreatedAt time.Time, balance float64, currency string) error
	SendSavingReceipt(to, name string, amount, expectedInterest float64, currency string) error
}

// Service handles business logic
type Service struct {
	store    Store
	notifier Notifier
	log      *logrus.Logger
	config   *config.Config
	now      func() time.Time
}

// NewService initializes a new service
func NewService(store Store, notifier Notifier, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		log:      log,
		config:   cfg,
		now:      time.Now,
	}
}

// CreateCycle creates a new savings cycle, filling unset limits with the
// group's customary defaults.
func (s *Service) CreateCycle(cycle *models.Cycle) (*models.Cycle, error) {
	if cycle.InterestRate < 0 {
		return nil, fmt.Errorf("interest rate must not be negative")
	}
	if cycle.DurationMonths <= 0 {
		return nil, fmt.Errorf("duration must be at least one month")
	}
	if cycle.SavingMin == 0 {
		cycle.SavingMin = 100
	}
	if cycle.SavingMax == 0 {
		cycle.SavingMax = 5000
	}
	if cycle.MembershipFee == 0 {
		cycle.MembershipFee = 50
	}
	if cycle.BorrowingLimitRatio == 0 {
		cycle.BorrowingLimitRatio = 3
	}
	if cycle.SavingMin > cycle.SavingMax {
		return nil, fmt.Errorf("saving minimum exceeds maximum")
	}
	cycle.IsLocked = false

	if err := s.store.CreateCycle(cycle); err != nil {
		return nil, err
	}

	s.log.Infof("Cycle created: %s (%s)", cycle.Name, cycle.ID)
	return cycle, nil
}

// ListCycles returns all cycles
func (s *Service) ListCycles() ([]models.Cycle, error) {
	return s.store.ListCycles()
}

// SetCycleLocked locks or unlocks a cycle. Locked cycles refuse new members,
// savings and loans.
func (s *Service) SetCycleLocked(cycleID string, locked bool) error {
	if err := s.store.SetCycleLocked(cycleID, locked); err != nil {
		return err
	}
	s.log.Infof("Cycle %s locked=%v", cycleID, locked)
	return nil
}

// JoinCycle adds a member to a cycle
func (s *Service) JoinCycle(cycleID, userID string) (*models.CycleMember, error) {
	cycle, err := s.store.FindCycleByID(cycleID)
	if err != nil {
		return nil, err
	}
	if cycle.IsLocked {
		return nil, ErrCycleLocked
	}
	if _, err := s.store.FindMemberByID(userID); err != nil {
		return nil, err
	}

	cm := &models.CycleMember{CycleID: cycleID, UserID: userID}
	if err := s.store.AddCycleMember(cm); err != nil {
		return nil, err
	}

	s.log.Infof("Member %s joined cycle %s", userID, cycleID)
	return cm, nil
}

// RegisterMember creates a new member
func (s *Service) RegisterMember(member *models.Member) (*models.Member, error) {
	if member.Name == "" || member.Email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if err := s.store.CreateMember(member); err != nil {
		return nil, err
	}
	s.log.Infof("Member registered: %s", member.Email)
	return member, nil
}
