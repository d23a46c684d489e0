package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/pracazumbi/presenca-api/internal/domain"
)

// MaxLimit bounds every list size a client may ask for.
const MaxLimit = 100

type MetricsRequest struct {
	Tier  string `form:"tier"`
	Limit int    `form:"limit"`
}

func (req *MetricsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Tier, validation.In(
			string(domain.TierAll),
			string(domain.TierHigh),
			string(domain.TierMedium),
			string(domain.TierLow),
		)),
		validation.Field(&req.Limit, validation.Min(0), validation.Max(MaxLimit)),
	)
}

func (req *MetricsRequest) RiskTier() domain.RiskTier {
	if req.Tier == "" {
		return domain.TierAll
	}
	return domain.RiskTier(req.Tier)
}

type RankingRequest struct {
	Limit int `form:"limit"`
}

func (req *RankingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Limit, validation.Min(0), validation.Max(MaxLimit)),
	)
}

type ImportRequest struct {
	Dedupe        bool `form:"dedupe"`
	SkipMalformed bool `form:"skip_malformed"`
}
