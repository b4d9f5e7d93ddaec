package finance

// SavingInterest is the interest fixed on a deposit at the time it is made.
type SavingInterest struct {
	InterestPerMonth      float64 `json:"interest_per_month"`
	ExpectedInterestAtEnd float64 `json:"expected_interest_at_end"`
}

// CalculateSavingInterest fixes the interest on a deposit given the cycle rate
// and the 0-based month the deposit lands in. Later deposits accrue over a
// shorter remaining window. The caller must guarantee
// periodIndex < totalDurationMonths.
func CalculateSavingInterest(amount, rate float64, periodIndex, totalDurationMonths int) SavingInterest {
	multiplier := float64(totalDurationMonths - periodIndex)
	expectedInterestAtEnd := amount * (rate * multiplier)
	interestPerMonth := expectedInterestAtEnd / multiplier
	return SavingInterest{
		InterestPerMonth:      interestPerMonth,
		ExpectedInterestAtEnd: expectedInterestAtEnd,
	}
}
