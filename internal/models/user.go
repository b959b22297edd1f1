package models

import "time"

// User is the backend user profile
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// RiskProfile is the user's questionnaire outcome
type RiskProfile struct {
	ID              int64  `json:"id,omitempty"`
	RiskTolerance   string `json:"riskTolerance"`
	InvestmentGoal  string `json:"investmentGoal,omitempty"`
	TimeHorizon     string `json:"timeHorizon,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	Score           int    `json:"score,omitempty"`
}
