package domain

import "github.com/shopspring/decimal"

// ApplicantInput holds the already-verified figures a credit limit is derived from.
type ApplicantInput struct {
	MonthlyIncome float64 `json:"monthly_income" validate:"gte=0"`
	CreditScore   int     `json:"credit_score" validate:"gte=300,lte=850"`
}

type CreditDecision struct {
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	MaxCreditLimit   decimal.Decimal `json:"max_credit_limit"`
	AdjustmentFactor float64         `json:"adjustment_factor"`
	RiskBand         RiskBand        `json:"risk_band"`
}
