package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/villagebank/village-bank-service/internal/models"
	"github.com/villagebank/village-bank-service/internal/repository"
	"github.com/villagebank/village-bank-service/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrCycleLocked),
		errors.Is(err, service.ErrMembershipUnpaid),
		errors.Is(err, service.ErrOverLimit),
		errors.Is(err, service.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// RegisterMember handles member registration
func (h *Handler) RegisterMember(w http.ResponseWriter, r *http.Request) {
	var req models.Member
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	member, err := h.svc.RegisterMember(&req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

// CreateCycle handles cycle creation
func (h *Handler) CreateCycle(w http.ResponseWriter, r *http.Request) {
	var req models.Cycle
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	cycle, err := h.svc.CreateCycle(&req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cycle)
}

// ListCycles returns all cycles
func (h *Handler) ListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.svc.ListCycles()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cycles)
}

// GetCycleSummary returns the computed financial picture of a cycle
func (h *Handler) GetCycleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.GetCycleSummary(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// LockCycle locks or unlocks a cycle
func (h *Handler) LockCycle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Locked bool `json:"locked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.svc.SetCycleLocked(mux.Vars(r)["id"], req.Locked); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"locked": req.Locked})
}

// JoinCycle adds a member to a cycle
func (h *Handler) JoinCycle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	cm, err := h.svc.JoinCycle(mux.Vars(r)["id"], req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cm)
}

// GetCycleShareOut returns the per-member settlement table for a cycle
func (h *Handler) GetCycleShareOut(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.GetCycleShareOut(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// CreateSaving records a deposit
func (h *Handler) CreateSaving(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CycleID     string  `json:"cycle_id"`
		UserID      string  `json:"user_id"`
		Amount      float64 `json:"amount"`
		PeriodIndex int     `json:"period_index"`
		CreatedBy   string  `json:"created_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	saving, err := h.svc.RecordSaving(req.CycleID, req.UserID, req.Amount, req.PeriodIndex, req.CreatedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saving)
}

// CreateLoan issues a loan
func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CycleID     string  `json:"cycle_id"`
		UserID      string  `json:"user_id"`
		Amount      float64 `json:"amount"`
		TopUpAmount float64 `json:"top_up_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	loan, err := h.svc.IssueLoan(req.CycleID, req.UserID, req.Amount, req.TopUpAmount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

// GetLoan returns a loan's derived financials and status
func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	details, err := h.svc.GetLoanDetails(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// CreatePayment records a money-in event
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CycleID string             `json:"cycle_id"`
		UserID  string             `json:"user_id"`
		Type    models.PaymentType `json:"type"`
		Amount  float64            `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	payment, err := h.svc.RecordPayment(req.CycleID, req.UserID, req.Type, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

// BookLossRecovery books a loss-sharing event for a cycle
func (h *Handler) BookLossRecovery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TotalLoss     float64 `json:"total_loss"`
		SharedPerUser float64 `json:"shared_per_user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	loss, err := h.svc.BookLossRecovery(mux.Vars(r)["id"], req.TotalLoss, req.SharedPerUser)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loss)
}
