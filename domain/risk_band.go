package domain

// RiskBand names a credit score interval.
type RiskBand string

const (
	RiskBandVeryPoor    RiskBand = "very_poor"
	RiskBandFair        RiskBand = "fair"
	RiskBandGood        RiskBand = "good"
	RiskBandVeryGood    RiskBand = "very_good"
	RiskBandExceptional RiskBand = "exceptional"
)

// BandRule describes one row of the score table. MaxScore is nil for the
// open-ended top band; MinScore is nil for the open-ended bottom band.
type BandRule struct {
	Band             RiskBand `json:"band"`
	MinScore         *int     `json:"min_score,omitempty"`
	MaxScore         *int     `json:"max_score,omitempty"`
	AdjustmentFactor float64  `json:"adjustment_factor"`
}
