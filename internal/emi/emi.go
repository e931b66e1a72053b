// Package emi implements equal-monthly-installment loan math: the EMI
// schedule for a principal, annual rate and tenure, and the principal versus
// interest proportion expressed as two pie angles for a renderer.
package emi

import (
	"math"

	"fintrack/internal/core"
)

// Schedule is the amortization result for one loan.
type Schedule struct {
	EMI           float64
	TotalInterest float64
	TotalPayment  float64
}

// Angles is the principal/interest proportion as two complementary degrees.
// Both are non-negative and sum to exactly 360.
type Angles struct {
	PrincipalDegrees float64
	InterestDegrees  float64
}

// Compute derives the EMI schedule. The monthly rate is
// annualRatePercent/12/100 over tenureYears*12 months. A zero rate
// degenerates to principal/months with no interest. Fails with
// ErrInvalidInput when principal or tenure is non-positive or the rate is
// negative.
func Compute(principal, annualRatePercent float64, tenureYears int) (Schedule, error) {
	if principal <= 0 || tenureYears <= 0 || annualRatePercent < 0 {
		return Schedule{}, core.ErrInvalidInput
	}

	months := float64(tenureYears * 12)
	rate := annualRatePercent / 12 / 100

	if rate == 0 {
		return Schedule{
			EMI:           principal / months,
			TotalInterest: 0,
			TotalPayment:  principal,
		}, nil
	}

	factor := math.Pow(1+rate, months)
	emi := principal * rate * factor / (factor - 1)
	totalPayment := emi * months
	return Schedule{
		EMI:           emi,
		TotalInterest: totalPayment - principal,
		TotalPayment:  totalPayment,
	}, nil
}

// SplitAngles converts the principal/interest proportion into two pie
// angles. The interest angle is derived as 360 minus the principal angle so
// the pair always sums to exactly 360; at totalInterest == 0 the result is
// {360, 0}. Fails with ErrInvalidInput when principal is non-positive or
// interest is negative.
func SplitAngles(principal, totalInterest float64) (Angles, error) {
	if principal <= 0 || totalInterest < 0 {
		return Angles{}, core.ErrInvalidInput
	}
	principalDeg := principal / (principal + totalInterest) * 360
	return Angles{
		PrincipalDegrees: principalDeg,
		InterestDegrees:  360 - principalDeg,
	}, nil
}
