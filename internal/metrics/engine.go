// Package metrics turns an attendance log into per-participant statistics:
// attendance rates over trailing windows, the current streak, a weighted
// risk score and gamification points. Every function here is pure; inputs
// are never mutated and nothing is cached between calls.
package metrics

import (
	"cmp"
	"math"
	"slices"

	"github.com/pracazumbi/presenca-api/internal/domain"
)

const (
	ShortWindow = 7
	LongWindow  = 30

	// Risk weights. Recent attendance counts more than the monthly trend.
	ShortWeight = 0.7
	LongWeight  = 0.3

	PointsPerPresence  = 10
	PointsPerStreakDay = 5
)

// Compute returns one ParticipantMetrics per participant that has at least
// one record in log. Rows follow the order of participants; a participant
// listed twice is reported once. Records of IDs missing from participants
// are ignored.
func Compute(log []domain.AttendanceRecord, participants []domain.Participant) []domain.ParticipantMetrics {
	out := make([]domain.ParticipantMetrics, 0, len(participants))
	if len(log) == 0 {
		return out
	}

	byParticipant := groupByParticipant(log)
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}

		records := byParticipant[p.ID]
		if len(records) == 0 {
			continue
		}
		SortRecords(records)
		out = append(out, computeOne(p, records))
	}

	return out
}

// computeOne expects records sorted ascending and non-empty.
func computeOne(p domain.Participant, records []domain.AttendanceRecord) domain.ParticipantMetrics {
	totalPresent, rate := presence(records)
	last7Present, last7Rate := presence(trailing(records, ShortWindow))
	last30Present, last30Rate := presence(trailing(records, LongWindow))
	streak := currentStreak(records)

	return domain.ParticipantMetrics{
		ParticipantID:  p.ID,
		Name:           p.Name,
		Age:            p.Age,
		TotalSessions:  len(records),
		TotalPresent:   totalPresent,
		AttendanceRate: Round1(rate),
		Last7Present:   last7Present,
		Last7Rate:      Round1(last7Rate),
		Last30Present:  last30Present,
		Last30Rate:     Round1(last30Rate),
		CurrentStreak:  streak,
		RiskScore:      Round1(RiskScore(last7Rate, last30Rate)),
		Points:         Points(totalPresent, streak),
	}
}

// RiskScore blends two presence percentages into a 0-100 disengagement
// score. Callers pass unrounded rates.
func RiskScore(shortRate, longRate float64) float64 {
	risk := 100 * (1 - (shortRate/100*ShortWeight + longRate/100*LongWeight))
	return math.Max(0, math.Min(100, risk))
}

func Points(totalPresent, streak int) int {
	return totalPresent*PointsPerPresence + streak*PointsPerStreakDay
}

// SortRecords orders records by date ascending in place. Records sharing a
// date are ordered absences first, then by exercise type, so the result
// does not depend on the input order.
func SortRecords(records []domain.AttendanceRecord) {
	slices.SortFunc(records, func(a, b domain.AttendanceRecord) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if a.Present != b.Present {
			if a.Present {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.ExerciseType, b.ExerciseType)
	})
}

// Round1 rounds to one decimal place, halves to even.
func Round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

// groupByParticipant copies records into fresh per-participant slices.
func groupByParticipant(log []domain.AttendanceRecord) map[string][]domain.AttendanceRecord {
	grouped := make(map[string][]domain.AttendanceRecord)
	for _, r := range log {
		grouped[r.ParticipantID] = append(grouped[r.ParticipantID], r)
	}
	return grouped
}

func trailing(records []domain.AttendanceRecord, n int) []domain.AttendanceRecord {
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

// presence returns the number of present records and the unrounded
// presence percentage.
func presence(records []domain.AttendanceRecord) (int, float64) {
	if len(records) == 0 {
		return 0, 0
	}

	count := 0
	for _, r := range records {
		if r.Present {
			count++
		}
	}

	return count, float64(count) / float64(len(records)) * 100
}

func currentStreak(records []domain.AttendanceRecord) int {
	streak := 0
	for i := len(records) - 1; i >= 0; i-- {
		if !records[i].Present {
			break
		}
		streak++
	}
	return streak
}
