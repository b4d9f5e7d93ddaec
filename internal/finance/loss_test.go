package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/villagebank/village-bank-service/internal/models"
)

func TestOutstandingLoss(t *testing.T) {
	losses := []models.LossRecovery{
		{ID: "x1", CycleID: "c1", TotalLoss: 600, SharedPerUser: 100},
		{ID: "x2", CycleID: "c1", TotalLoss: 300, SharedPerUser: 50},
		{ID: "x3", CycleID: "other", TotalLoss: 900, SharedPerUser: 150},
	}
	payments := []models.Payment{
		{ID: "p1", CycleID: "c1", UserID: "u1", Type: models.PaymentLossRecovery, Amount: 60},
		{ID: "p2", CycleID: "c1", UserID: "u2", Type: models.PaymentLossRecovery, Amount: 150},
		{ID: "p3", CycleID: "c1", UserID: "u1", Type: models.PaymentPenalty, Amount: 40},
	}

	assert.Equal(t, 90.0, OutstandingLoss("u1", "c1", losses, payments))
	assert.Equal(t, 0.0, OutstandingLoss("u2", "c1", losses, payments))
}

func TestOutstandingLossClampedAtZero(t *testing.T) {
	losses := []models.LossRecovery{{ID: "x1", CycleID: "c1", SharedPerUser: 50}}
	payments := []models.Payment{
		{ID: "p1", CycleID: "c1", UserID: "u1", Type: models.PaymentLossRecovery, Amount: 200},
	}

	assert.Equal(t, 0.0, OutstandingLoss("u1", "c1", losses, payments))
}

func TestOutstandingLossAppliesToLateJoiners(t *testing.T) {
	// Liability sums every loss event in the cycle, even ones booked before
	// the member joined.
	old := models.LossRecovery{
		ID: "x1", CycleID: "c1", SharedPerUser: 75,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 75.0, OutstandingLoss("joined-later", "c1", []models.LossRecovery{old}, nil))
}

func TestGroupLossRecovery(t *testing.T) {
	assert.Equal(t, 25.0, GroupLossRecovery(1000, 0.25, 10))
	assert.Equal(t, 0.0, GroupLossRecovery(1000, 0.25, 0))
	assert.Equal(t, 0.0, GroupLossRecovery(0, 0.25, 4))
}
