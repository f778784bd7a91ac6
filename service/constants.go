package service

const (
	MaxRepaymentRatio   = 0.40 // share of monthly income that may go to repayment
	MonthlyInterestRate = 0.02 // flat monthly rate the ceiling is amortized at

	VeryPoorFactor = 0.50
	FairFactor     = 0.70
	GoodFactor     = 0.85
	TopFactor      = 1.00

	// Lower bounds, inclusive.
	FairMinScore        = 580
	GoodMinScore        = 670
	VeryGoodMinScore    = 740
	ExceptionalMinScore = 800

	// Conventional score scale, only enforced in strict mode.
	MinCreditScore = 300
	MaxCreditScore = 850
)
