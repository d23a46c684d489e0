package response

import (
	"github.com/pracazumbi/presenca-api/internal/domain"
)

type MetricsResponse struct {
	Tier         domain.RiskTier             `json:"tier"`
	Count        int                         `json:"count"`
	Participants []domain.ParticipantMetrics `json:"participants"`
}

type RankingResponse struct {
	Ranking []domain.RankedParticipant `json:"ranking"`
}

type StatsResponse struct {
	Points []domain.RatePoint `json:"points"`
}

type EvolutionResponse struct {
	ParticipantID string                  `json:"participant_id"`
	Points        []domain.EvolutionPoint `json:"points"`
}

type HealthcheckResponse struct {
	Status string `json:"status"`
}
