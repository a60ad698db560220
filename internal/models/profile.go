package models

// RiskTolerance is the user's appetite for drawdown.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// InvestmentGoal is the user's stated objective.
type InvestmentGoal string

const (
	GoalLongTermGrowth     InvestmentGoal = "long_term_growth"
	GoalPassiveIncome      InvestmentGoal = "passive_income"
	GoalSpeculativeTrading InvestmentGoal = "speculative_trading"
	GoalWealthPreservation InvestmentGoal = "wealth_preservation"
)

// Profile is the user's risk/goal profile. The authoritative copy lives on
// the backend; edit sessions work on a draft copy and only write back on an
// explicit save.
type Profile struct {
	RiskTolerance  RiskTolerance  `json:"risk_tolerance"`
	InvestmentGoal InvestmentGoal `json:"investment_goal"`
}

// DefaultProfile returns the profile used when the backend has no stored
// values (or returns blanks for individual fields).
func DefaultProfile() Profile {
	return Profile{RiskTolerance: RiskMedium, InvestmentGoal: GoalLongTermGrowth}
}

// Normalized returns a copy with any missing field replaced by its default.
func (p Profile) Normalized() Profile {
	if p.RiskTolerance == "" {
		p.RiskTolerance = RiskMedium
	}
	if p.InvestmentGoal == "" {
		p.InvestmentGoal = GoalLongTermGrowth
	}
	return p
}

// ValidRisk reports whether r is one of the recognized tolerance levels.
func ValidRisk(r RiskTolerance) bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// ValidGoal reports whether g is one of the recognized investment goals.
func ValidGoal(g InvestmentGoal) bool {
	switch g {
	case GoalLongTermGrowth, GoalPassiveIncome, GoalSpeculativeTrading, GoalWealthPreservation:
		return true
	}
	return false
}
