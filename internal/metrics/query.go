package metrics

import (
	"cmp"
	"slices"

	"github.com/pracazumbi/presenca-api/internal/domain"
)

// FilterByTier keeps the rows whose risk falls in tier. TierAll and the
// empty tier keep everything.
func FilterByTier(rows []domain.ParticipantMetrics, tier domain.RiskTier) []domain.ParticipantMetrics {
	out := make([]domain.ParticipantMetrics, 0, len(rows))
	for _, row := range rows {
		if tier == "" || tier == domain.TierAll || row.Tier() == tier {
			out = append(out, row)
		}
	}
	return out
}

// SortByRisk returns a copy of rows ordered by risk descending, ties broken
// by participant ID.
func SortByRisk(rows []domain.ParticipantMetrics) []domain.ParticipantMetrics {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b domain.ParticipantMetrics) int {
		if c := cmp.Compare(b.RiskScore, a.RiskScore); c != 0 {
			return c
		}
		return cmp.Compare(a.ParticipantID, b.ParticipantID)
	})
	return sorted
}

// Top returns at most n leading rows. A non-positive n returns all rows.
func Top(rows []domain.ParticipantMetrics, n int) []domain.ParticipantMetrics {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// Rank orders participants by points descending and returns the first n
// with 1-based positions. Ties are broken by name, then ID.
func Rank(rows []domain.ParticipantMetrics, n int) []domain.RankedParticipant {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b domain.ParticipantMetrics) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ParticipantID, b.ParticipantID)
	})
	sorted = Top(sorted, n)

	ranking := make([]domain.RankedParticipant, 0, len(sorted))
	for i, row := range sorted {
		ranking = append(ranking, domain.RankedParticipant{
			Position:      i + 1,
			ParticipantID: row.ParticipantID,
			Name:          row.Name,
			Points:        row.Points,
			CurrentStreak: row.CurrentStreak,
		})
	}
	return ranking
}
