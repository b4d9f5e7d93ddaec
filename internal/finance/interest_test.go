package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateSavingInterest(t *testing.T) {
	cases := []struct {
		name         string
		amount, rate float64
		periodIndex  int
		duration     int
		wantPerMonth float64
		wantAtEnd    float64
	}{
		{"first month full window", 1000, 0.1, 0, 6, 100, 600},
		{"mid-cycle deposit", 1000, 0.1, 3, 6, 100, 300},
		{"last month", 500, 0.05, 5, 6, 25, 25},
		{"zero amount", 0, 0.1, 0, 6, 0, 0},
		{"zero rate", 1000, 0, 2, 12, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateSavingInterest(tc.amount, tc.rate, tc.periodIndex, tc.duration)
			assert.InDelta(t, tc.wantPerMonth, got.InterestPerMonth, 1e-9)
			assert.InDelta(t, tc.wantAtEnd, got.ExpectedInterestAtEnd, 1e-9)
		})
	}
}
