package service

import (
	"strconv"

	"github.com/shopspring/decimal"

	"credit-limit/domain"
)

// CalculateCreditLimit returns the credit limit for the given monthly income and
// credit score, rounded to cents. It is defined for every input: negative income
// yields a non-positive limit and scores outside 300-850 fall into the nearest band.
func CalculateCreditLimit(monthlyIncome float64, creditScore int) float64 {
	return RoundToCents(MaxCreditLimit(monthlyIncome) * AdjustmentFactor(creditScore))
}

// MaxCreditLimit is the affordability ceiling: the principal whose interest at
// MonthlyInterestRate equals MaxRepaymentRatio of the income.
func MaxCreditLimit(monthlyIncome float64) float64 {
	return (MaxRepaymentRatio * monthlyIncome) / MonthlyInterestRate
}

// AdjustmentFactor returns the multiplier applied to the ceiling for a score.
func AdjustmentFactor(creditScore int) float64 {
	switch {
	case creditScore < FairMinScore:
		return VeryPoorFactor
	case creditScore < GoodMinScore:
		return FairFactor
	case creditScore < VeryGoodMinScore:
		return GoodFactor
	default:
		return TopFactor
	}
}

func BandForScore(creditScore int) domain.RiskBand {
	switch {
	case creditScore < FairMinScore:
		return domain.RiskBandVeryPoor
	case creditScore < GoodMinScore:
		return domain.RiskBandFair
	case creditScore < VeryGoodMinScore:
		return domain.RiskBandGood
	case creditScore < ExceptionalMinScore:
		return domain.RiskBandVeryGood
	default:
		return domain.RiskBandExceptional
	}
}

// Bands returns the score table in ascending order.
func Bands() []domain.BandRule {
	bound := func(v int) *int { return &v }
	return []domain.BandRule{
		{Band: domain.RiskBandVeryPoor, MaxScore: bound(FairMinScore - 1), AdjustmentFactor: VeryPoorFactor},
		{Band: domain.RiskBandFair, MinScore: bound(FairMinScore), MaxScore: bound(GoodMinScore - 1), AdjustmentFactor: FairFactor},
		{Band: domain.RiskBandGood, MinScore: bound(GoodMinScore), MaxScore: bound(VeryGoodMinScore - 1), AdjustmentFactor: GoodFactor},
		{Band: domain.RiskBandVeryGood, MinScore: bound(VeryGoodMinScore), MaxScore: bound(ExceptionalMinScore - 1), AdjustmentFactor: TopFactor},
		{Band: domain.RiskBandExceptional, MinScore: bound(ExceptionalMinScore), AdjustmentFactor: TopFactor},
	}
}

// RoundToCents rounds v to two decimals, half to even on the exact binary value.
// math.Round(v*100)/100 is not equivalent: it rounds 2.125 up.
func RoundToCents(v float64) float64 {
	r, _ := strconv.ParseFloat(formatCents(v), 64)
	return r
}

// toCents converts v to a two-place decimal using the same rounding as RoundToCents.
func toCents(v float64) (decimal.Decimal, error) {
	return decimal.NewFromString(formatCents(v))
}

func formatCents(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
