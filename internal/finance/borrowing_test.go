package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/villagebank/village-bank-service/internal/models"
)

func TestBorrowingPower(t *testing.T) {
	savings := []models.Saving{
		{ID: "s1", CycleID: "c1", UserID: "u1", Amount: 300},
		{ID: "s2", CycleID: "c1", UserID: "u1", Amount: 200},
	}

	assert.Equal(t, 1500.0, BorrowingPower(savings, 3))
	assert.Equal(t, 250.0, BorrowingPower(savings, 0.5))
}

func TestBorrowingPowerZeroRatioIsUnbounded(t *testing.T) {
	savings := []models.Saving{{ID: "s1", CycleID: "c1", UserID: "u1", Amount: 10}}

	power := BorrowingPower(savings, 0)

	assert.True(t, math.IsInf(power, 1))
	assert.Greater(t, power, 1e12)
}

func TestBorrowingPowerNoSavings(t *testing.T) {
	assert.Equal(t, 0.0, BorrowingPower(nil, 3))
}
