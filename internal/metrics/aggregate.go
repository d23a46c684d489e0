package metrics

import (
	"cmp"
	"slices"

	"github.com/pracazumbi/presenca-api/internal/domain"
)

const DateLayout = "2006-01-02"

// OverallRate is the presence percentage over the whole log.
func OverallRate(log []domain.AttendanceRecord) float64 {
	_, rate := presence(log)
	return Round1(rate)
}

// RateByExerciseType groups the log by exercise type. Points are sorted by
// label.
func RateByExerciseType(log []domain.AttendanceRecord) []domain.RatePoint {
	points := bucketRates(log, func(r domain.AttendanceRecord) string {
		return r.ExerciseType
	})
	slices.SortFunc(points, byLabel)
	return points
}

// DailyRates groups the log by calendar day, oldest first.
func DailyRates(log []domain.AttendanceRecord) []domain.RatePoint {
	points := bucketRates(log, func(r domain.AttendanceRecord) string {
		return r.Date.Format(DateLayout)
	})
	// ISO dates sort lexically.
	slices.SortFunc(points, byLabel)
	return points
}

// CumulativePresence returns the running presence count of one
// participant's records in date order.
func CumulativePresence(records []domain.AttendanceRecord) []domain.EvolutionPoint {
	sorted := slices.Clone(records)
	SortRecords(sorted)

	points := make([]domain.EvolutionPoint, 0, len(sorted))
	total := 0
	for _, r := range sorted {
		if r.Present {
			total++
		}
		points = append(points, domain.EvolutionPoint{
			Date:       r.Date,
			Present:    r.Present,
			Cumulative: total,
		})
	}
	return points
}

// Summarize builds the headline numbers of the dashboard from the log, the
// participant roster and the rows Compute produced for them.
func Summarize(log []domain.AttendanceRecord, participants []domain.Participant, rows []domain.ParticipantMetrics) domain.Overview {
	overview := domain.Overview{
		TotalParticipants: countDistinct(participants),
		AttendanceRate:    OverallRate(log),
	}

	for i, r := range log {
		if i == 0 || r.Date.Before(overview.From) {
			overview.From = r.Date
		}
		if i == 0 || r.Date.After(overview.To) {
			overview.To = r.Date
		}
	}

	if len(rows) == 0 {
		return overview
	}

	streakSum := 0
	for _, row := range rows {
		if row.RiskScore > domain.HighRiskThreshold {
			overview.HighRiskCount++
		}
		if row.CurrentStreak > overview.BestStreak {
			overview.BestStreak = row.CurrentStreak
		}
		streakSum += row.CurrentStreak
		overview.TotalPoints += row.Points
	}
	overview.AverageStreak = Round1(float64(streakSum) / float64(len(rows)))
	overview.Leader = Rank(rows, 1)[0].Name

	return overview
}

func bucketRates(log []domain.AttendanceRecord, key func(domain.AttendanceRecord) string) []domain.RatePoint {
	type bucket struct {
		sessions int
		present  int
	}

	buckets := make(map[string]*bucket)
	for _, r := range log {
		k := key(r)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
		}
		b.sessions++
		if r.Present {
			b.present++
		}
	}

	points := make([]domain.RatePoint, 0, len(buckets))
	for label, b := range buckets {
		points = append(points, domain.RatePoint{
			Label:    label,
			Sessions: b.sessions,
			Rate:     Round1(float64(b.present) / float64(b.sessions) * 100),
		})
	}
	return points
}

func byLabel(a, b domain.RatePoint) int {
	return cmp.Compare(a.Label, b.Label)
}

func countDistinct(participants []domain.Participant) int {
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		seen[p.ID] = struct{}{}
	}
	return len(seen)
}
