package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/villagebank/village-bank-service/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// Repository provides database operations over the record store
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateMember creates a new member in the database
func (r *Repository) CreateMember(member *models.Member) error {
	member.ID = uuid.NewString()
	query := `
		INSERT INTO villagebank.members (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRow(query, member.ID, member.Name, member.Email, member.Phone).
		Scan(&member.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// FindMemberByID retrieves a member by id
func (r *Repository) FindMemberByID(id string) (*models.Member, error) {
	member := &models.Member{}
	query := `
		SELECT id, name, email, phone, created_at
		FROM villagebank.members
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&member.ID, &member.Name, &member.Email, &member.Phone, &member.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return member, nil
}

// CreateCycle creates a new cycle in the database
func (r *Repository) CreateCycle(cycle *models.Cycle) error {
	cycle.ID = uuid.NewString()
	query := `
		INSERT INTO villagebank.cycles
			(id, name, interest_rate, duration_months, saving_min, saving_max,
			 membership_fee, borrowing_limit_ratio, capital, currency, is_locked,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(query,
		cycle.ID, cycle.Name, cycle.InterestRate, cycle.DurationMonths,
		cycle.SavingMin, cycle.SavingMax, cycle.MembershipFee,
		cycle.BorrowingLimitRatio, cycle.Capital, cycle.Currency, cycle.IsLocked).
		Scan(&cycle.CreatedAt, &cycle.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create cycle: %w", err)
	}
	return nil
}

// FindCycleByID retrieves a cycle by id
func (r *Repository) FindCycleByID(id string) (*models.Cycle, error) {
	cycle := &models.Cycle{}
	query := `
		SELECT id, name, interest_rate, duration_months, saving_min, saving_max,
		       membership_fee, borrowing_limit_ratio, capital, currency, is_locked,
		       created_at, updated_at
		FROM villagebank.cycles
		WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&cycle.ID, &cycle.Name, &cycle.InterestRate, &cycle.DurationMonths,
		&cycle.SavingMin, &cycle.SavingMax, &cycle.MembershipFee,
		&cycle.BorrowingLimitRatio, &cycle.Capital, &cycle.Currency,
		&cycle.IsLocked, &cycle.CreatedAt, &cycle.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("cycle %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cycle: %w", err)
	}
	return cycle, nil
}

// ListCycles retrieves all cycles
func (r *Repository) ListCycles() ([]models.Cycle, error) {
	query := `
		SELECT id, name, interest_rate, duration_months, saving_min, saving_max,
		       membership_fee, borrowing_limit_ratio, capital, currency, is_locked,
		       created_at, updated_at
		FROM villagebank.cycles
		ORDER BY created_at`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	defer rows.Close()

	var cycles []models.Cycle
	for rows.Next() {
		var cycle models.Cycle
		if err := rows.Scan(
			&cycle.ID, &cycle.Name, &cycle.InterestRate, &cycle.DurationMonths,
			&cycle.SavingMin, &cycle.SavingMax, &cycle.MembershipFee,
			&cycle.BorrowingLimitRatio, &cycle.Capital, &cycle.Currency,
			&cycle.IsLocked, &cycle.CreatedAt, &cycle.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		cycles = append(cycles, cycle)
	}
	return cycles, rows.Err()
}

// SetCycleLocked updates a cycle's lock flag
func (r *Repository) SetCycleLocked(id string, locked bool) error {
	query := `
		UPDATE villagebank.cycles
		SET is_locked = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	result, err := r.db.Exec(query, id, locked)
	if err != nil {
		return fmt.Errorf("failed to update cycle lock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update cycle lock: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("cycle %w", ErrNotFound)
	}
	return nil
}

// UpdateCycleCapital refreshes the cached display capital for a cycle
func (r *Repository) UpdateCycleCapital(id string, capital float64) error {
	query := `
		UPDATE villagebank.cycles
		SET capital = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	if _, err := r.db.Exec(query, id, capital); err != nil {
		return fmt.Errorf("failed to update cycle capital: %w", err)
	}
	return nil
}

// AddCycleMember links a member to a cycle
func (r *Repository) AddCycleMember(cm *models.CycleMember) error {
	query := `
		INSERT INTO villagebank.cycle_members (cycle_id, user_id, joined_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		RETURNING joined_at`
	err := r.db.QueryRow(query, cm.CycleID, cm.UserID).Scan(&cm.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to add cycle member: %w", err)
	}
	return nil
}

// ListCycleMembers retrieves all memberships for a cycle
func (r *Repository) ListCycleMembers(cycleID string) ([]models.CycleMember, error) {
	query := `
		SELECT cycle_id, user_id, joined_at
		FROM villagebank.cycle_members
		WHERE cycle_id = $1
		ORDER BY joined_at`
	rows, err := r.db.Query(query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycle members: %w", err)
	}
	defer rows.Close()

	var members []models.CycleMember
	for rows.Next() {
		var cm models.CycleMember
		if err := rows.Scan(&cm.CycleID, &cm.UserID, &cm.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cycle member: %w", err)
		}
		members = append(members, cm)
	}
	return members, rows.Err()
}

// CreateSaving creates a new saving record
func (r *Repository) CreateSaving(saving *models.Saving) error {
	saving.ID = uuid.NewString()
	query := `
		INSERT INTO villagebank.savings
			(id, cycle_id, user_id, amount, interest_per_month,
			 expected_interest_at_end, period_index, created_at, last_updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, $8)
		RETURNING created_at, last_updated_at`
	err := r.db.QueryRow(query,
		saving.ID, saving.CycleID, saving.UserID, saving.Amount,
		saving.InterestPerMonth, saving.ExpectedInterestAtEnd,
		saving.PeriodIndex, saving.CreatedBy).
		Scan(&saving.CreatedAt, &saving.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create saving: %w", err)
	}
	return nil
}

// ListSavingsByCycle retrieves all savings for a cycle
func (r *Repository) ListSavingsByCycle(cycleID string) ([]models.Saving, error) {
	query := `
		SELECT id, cycle_id, user_id, amount, interest_per_month,
		       expected_interest_at_end, period_index, created_at, last_updated_at, created_by
		FROM villagebank.savings
		WHERE cycle_id = $1
		ORDER BY created_at`
	rows, err := r.db.Query(query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings: %w", err)
	}
	defer rows.Close()

	var savings []models.Saving
	for rows.Next() {
		var s models.Saving
		if err := rows.Scan(
			&s.ID, &s.CycleID, &s.UserID, &s.Amount, &s.InterestPerMonth,
			&s.ExpectedInterestAtEnd, &s.PeriodIndex, &s.CreatedAt,
			&s.LastUpdatedAt, &s.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan saving: %w", err)
		}
		savings = append(savings, s)
	}
	return savings, rows.Err()
}

// CreateLoan creates a new loan record
func (r *Repository) CreateLoan(loan *models.Loan) error {
	loan.ID = uuid.NewString()
	query := `
		INSERT INTO villagebank.loans
			(id, cycle_id, user_id, amount, top_up_amount, status, created_at, last_edited_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, last_edited_at`
	err := r.db.QueryRow(query,
		loan.ID, loan.CycleID, loan.UserID, loan.Amount, loan.TopUpAmount, loan.Status).
		Scan(&loan.CreatedAt, &loan.LastEditedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// FindLoanByID retrieves a loan by id
func (r *Repository) FindLoanByID(id string) (*models.Loan, error) {
	loan := &models.Loan{}
	query := `
		SELECT id, cycle_id, user_id, amount, top_up_amount, status, created_at, last_edited_at
		FROM villagebank.loans
		WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&loan.ID, &loan.CycleID, &loan.UserID, &loan.Amount,
		&loan.TopUpAmount, &loan.Status, &loan.CreatedAt, &loan.LastEditedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("loan %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find loan: %w", err)
	}
	return loan, nil
}

// ListLoansByCycle retrieves all loans for a cycle
func (r *Repository) ListLoansByCycle(cycleID string) ([]models.Loan, error) {
	query := `
		SELECT id, cycle_id, user_id, amount, top_up_amount, status, created_at, last_edited_at
		FROM villagebank.loans
		WHERE cycle_id = $1
		ORDER BY created_at`
	return r.queryLoans(query, cycleID)
}

// ListUnsettledLoans retrieves every loan not yet marked PAID, across cycles
func (r *Repository) ListUnsettledLoans() ([]models.Loan, error) {
	query := `
		SELECT id, cycle_id, user_id, amount, top_up_amount, status, created_at, last_edited_at
		FROM villagebank.loans
		WHERE status <> 'PAID'
		ORDER BY created_at`
	return r.queryLoans(query)
}

func (r *Repository) queryLoans(query string, args ...interface{}) ([]models.Loan, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		var l models.Loan
		if err := rows.Scan(
			&l.ID, &l.CycleID, &l.UserID, &l.Amount, &l.TopUpAmount,
			&l.Status, &l.CreatedAt, &l.LastEditedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// UpdateLoanStatus persists a recomputed loan status
func (r *Repository) UpdateLoanStatus(id string, status models.LoanStatus) error {
	query := `
		UPDATE villagebank.loans
		SET status = $2, last_edited_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	if _, err := r.db.Exec(query, id, status); err != nil {
		return fmt.Errorf("failed to update loan status: %w", err)
	}
	return nil
}

// CreatePayment creates a new payment record
func (r *Repository) CreatePayment(payment *models.Payment) error {
	payment.ID = uuid.NewString()
	query := `
		INSERT INTO villagebank.payments (id, cycle_id, user_id, type, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRow(query,
		payment.ID, payment.CycleID, payment.UserID, payment.Type, payment.Amount).
		Scan(&payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// ListPaymentsByCycle retrieves all payments for a cycle
func (r *Repository) ListPaymentsByCycle(cycleID string) ([]models.Payment, error) {
	query := `
		SELECT id, cycle_id, user_id, type, amount, created_at
		FROM villagebank.payments
		WHERE cycle_id = $1
		ORDER BY created_at`
	rows, err := r.db.Query(query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.CycleID, &p.UserID, &p.Type, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// CreateLossRecovery creates a new loss-sharing record
func (r *Repository) CreateLossRecovery(loss *models.LossRecovery) error {
	loss.ID = uuid.NewString()
	query := `
		INSERT INTO villagebank.loss_recoveries (id, cycle_id, total_loss, shared_per_user, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRow(query, loss.ID, loss.CycleID, loss.TotalLoss, loss.SharedPerUser).
		Scan(&loss.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loss recovery: %w", err)
	}
	return nil
}

// ListLossesByCycle retrieves all loss-sharing events for a cycle
func (r *Repository) ListLossesByCycle(cycleID string) ([]models.LossRecovery, error) {
	query := `
		SELECT id, cycle_id, total_loss, shared_per_user, created_at
		FROM villagebank.loss_recoveries
		WHERE cycle_id = $1
		ORDER BY created_at`
	rows, err := r.db.Query(query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loss recoveries: %w", err)
	}
	defer rows.Close()

	var losses []models.LossRecovery
	for rows.Next() {
		var l models.LossRecovery
		if err := rows.Scan(&l.ID, &l.CycleID, &l.TotalLoss, &l.SharedPerUser, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loss recovery: %w", err)
		}
		losses = append(losses, l)
	}
	return losses, rows.Err()
}
