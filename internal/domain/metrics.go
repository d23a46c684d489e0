package domain

import "time"

// ParticipantMetrics is derived from a participant's attendance history on
// every request. It is never stored.
type ParticipantMetrics struct {
	ParticipantID  string  `json:"participant_id"`
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	TotalSessions  int     `json:"total_sessions"`
	TotalPresent   int     `json:"total_present"`
	AttendanceRate float64 `json:"attendance_rate"`
	Last7Present   int     `json:"last7_present"`
	Last7Rate      float64 `json:"last7_rate"`
	Last30Present  int     `json:"last30_present"`
	Last30Rate     float64 `json:"last30_rate"`
	CurrentStreak  int     `json:"current_streak"`
	RiskScore      float64 `json:"risk_score"`
	Points         int     `json:"points"`
}

type RiskTier string

const (
	TierAll    RiskTier = "all"
	TierHigh   RiskTier = "high"
	TierMedium RiskTier = "medium"
	TierLow    RiskTier = "low"
)

const (
	HighRiskThreshold = 60.0
	LowRiskThreshold  = 30.0
)

// TierOf buckets a risk score: high above 60, medium from 30 to 60
// inclusive, low below 30.
func TierOf(score float64) RiskTier {
	switch {
	case score > HighRiskThreshold:
		return TierHigh
	case score >= LowRiskThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

func (m ParticipantMetrics) Tier() RiskTier {
	return TierOf(m.RiskScore)
}

type RankedParticipant struct {
	Position      int    `json:"position"`
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	CurrentStreak int    `json:"current_streak"`
}

type Overview struct {
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
	TotalParticipants int       `json:"total_participants"`
	AttendanceRate    float64   `json:"attendance_rate"`
	HighRiskCount     int       `json:"high_risk_count"`
	AverageStreak     float64   `json:"average_streak"`
	BestStreak        int       `json:"best_streak"`
	TotalPoints       int       `json:"total_points"`
	Leader            string    `json:"leader,omitempty"`
}

// RatePoint is a presence rate for one bucket of the log, an exercise type
// or a calendar day.
type RatePoint struct {
	Label    string  `json:"label"`
	Sessions int     `json:"sessions"`
	Rate     float64 `json:"rate"`
}

type EvolutionPoint struct {
	Date       time.Time `json:"date"`
	Present    bool      `json:"present"`
	Cumulative int       `json:"cumulative"`
}

type Encouragement struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	RiskScore     float64 `json:"risk_score"`
	Needed        bool    `json:"needed"`
	Message       string  `json:"message,omitempty"`
}
