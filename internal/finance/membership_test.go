package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/villagebank/village-bank-service/internal/models"
)

func TestIsMembershipPaid(t *testing.T) {
	payments := []models.Payment{
		{ID: "p1", CycleID: "c1", UserID: "u1", Type: models.PaymentMembershipFee, Amount: 50},
		{ID: "p2", CycleID: "c1", UserID: "u2", Type: models.PaymentPenalty, Amount: 50},
	}

	assert.True(t, IsMembershipPaid("u1", "c1", payments))
	assert.False(t, IsMembershipPaid("u2", "c1", payments))
	assert.False(t, IsMembershipPaid("u1", "c2", payments))
	assert.False(t, IsMembershipPaid("u1", "c1", nil))
}
