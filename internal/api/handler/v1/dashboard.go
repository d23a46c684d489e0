package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pracazumbi/presenca-api/internal/api/handler/v1/request"
	"github.com/pracazumbi/presenca-api/internal/api/handler/v1/response"
	"github.com/pracazumbi/presenca-api/internal/domain"
	"github.com/pracazumbi/presenca-api/internal/service"
)

type DashboardService interface {
	Metrics(ctx context.Context, q service.MetricsQuery) ([]domain.ParticipantMetrics, error)
	ParticipantMetrics(ctx context.Context, participantID string) (domain.ParticipantMetrics, error)
	Overview(ctx context.Context) (domain.Overview, error)
	Ranking(ctx context.Context, size int) ([]domain.RankedParticipant, error)
	ExerciseStats(ctx context.Context) ([]domain.RatePoint, error)
	DailyStats(ctx context.Context) ([]domain.RatePoint, error)
	Evolution(ctx context.Context, participantID string) ([]domain.EvolutionPoint, error)
	Encouragement(ctx context.Context, participantID string) (domain.Encouragement, error)
}

type DashboardHandler struct {
	svc DashboardService
}

func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{
		svc: svc,
	}
}

// HandleGetMetrics godoc
// @Summary      List participant metrics
// @Description  Participants ordered by risk score, highest first, optionally restricted to a risk tier.
// @Tags         metrics
// @Produce      json
// @Param        tier   query     string  false  "Risk tier"  Enums(all, high, medium, low)
// @Param        limit  query     int     false  "Maximum number of rows"
// @Success      200    {object}  response.MetricsResponse
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /metrics [get]
func (h *DashboardHandler) HandleGetMetrics(ctx *gin.Context) {
	var req request.MetricsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	rows, err := h.svc.Metrics(ctx.Request.Context(), service.MetricsQuery{
		Tier:  req.RiskTier(),
		Limit: req.Limit,
	})
	if err != nil {
		err = fmt.Errorf("HandleGetMetrics -> h.svc.Metrics -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, response.MetricsResponse{
		Tier:         req.RiskTier(),
		Count:        len(rows),
		Participants: rows,
	})
}

// HandleGetParticipantMetrics godoc
// @Summary      Get the metrics of one participant
// @Tags         participants
// @Produce      json
// @Param        participantID  path      string  true  "Participant ID"
// @Success      200            {object}  domain.ParticipantMetrics
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /participants/{participantID}/metrics [get]
func (h *DashboardHandler) HandleGetParticipantMetrics(ctx *gin.Context) {
	participantID := ctx.Param("participantID")

	m, err := h.svc.ParticipantMetrics(ctx.Request.Context(), participantID)
	if err != nil {
		renderParticipantErr(ctx, participantID, fmt.Errorf("HandleGetParticipantMetrics -> h.svc.ParticipantMetrics -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, m)
}

// HandleGetEvolution godoc
// @Summary      Get the cumulative presence of one participant
// @Tags         participants
// @Produce      json
// @Param        participantID  path      string  true  "Participant ID"
// @Success      200            {object}  response.EvolutionResponse
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /participants/{participantID}/evolution [get]
func (h *DashboardHandler) HandleGetEvolution(ctx *gin.Context) {
	participantID := ctx.Param("participantID")

	points, err := h.svc.Evolution(ctx.Request.Context(), participantID)
	if err != nil {
		renderParticipantErr(ctx, participantID, fmt.Errorf("HandleGetEvolution -> h.svc.Evolution -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.EvolutionResponse{
		ParticipantID: participantID,
		Points:        points,
	})
}

// HandleGetEncouragement godoc
// @Summary      Draft an encouragement message
// @Description  The message is only drafted when the participant's risk score is above the configured threshold.
// @Tags         participants
// @Produce      json
// @Param        participantID  path      string  true  "Participant ID"
// @Success      200            {object}  domain.Encouragement
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /participants/{participantID}/encouragement [get]
func (h *DashboardHandler) HandleGetEncouragement(ctx *gin.Context) {
	participantID := ctx.Param("participantID")

	enc, err := h.svc.Encouragement(ctx.Request.Context(), participantID)
	if err != nil {
		renderParticipantErr(ctx, participantID, fmt.Errorf("HandleGetEncouragement -> h.svc.Encouragement -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, enc)
}

// HandleGetOverview godoc
// @Summary      Get the headline numbers of the dashboard
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  domain.Overview
// @Failure      500  {object}  response.Err
// @Router       /overview [get]
func (h *DashboardHandler) HandleGetOverview(ctx *gin.Context) {
	overview, err := h.svc.Overview(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetOverview -> h.svc.Overview -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, overview)
}

// HandleGetRanking godoc
// @Summary      Get the points ranking
// @Tags         metrics
// @Produce      json
// @Param        limit  query     int  false  "Ranking size"
// @Success      200    {object}  response.RankingResponse
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /ranking [get]
func (h *DashboardHandler) HandleGetRanking(ctx *gin.Context) {
	var req request.RankingRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ranking, err := h.svc.Ranking(ctx.Request.Context(), req.Limit)
	if err != nil {
		err = fmt.Errorf("HandleGetRanking -> h.svc.Ranking -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, response.RankingResponse{Ranking: ranking})
}

// HandleGetExerciseStats godoc
// @Summary      Get presence rates per exercise type
// @Tags         stats
// @Produce      json
// @Success      200  {object}  response.StatsResponse
// @Failure      500  {object}  response.Err
// @Router       /stats/exercises [get]
func (h *DashboardHandler) HandleGetExerciseStats(ctx *gin.Context) {
	points, err := h.svc.ExerciseStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetExerciseStats -> h.svc.ExerciseStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, response.StatsResponse{Points: points})
}

// HandleGetDailyStats godoc
// @Summary      Get presence rates per day
// @Tags         stats
// @Produce      json
// @Success      200  {object}  response.StatsResponse
// @Failure      500  {object}  response.Err
// @Router       /stats/daily [get]
func (h *DashboardHandler) HandleGetDailyStats(ctx *gin.Context) {
	points, err := h.svc.DailyStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetDailyStats -> h.svc.DailyStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, response.StatsResponse{Points: points})
}

func renderParticipantErr(ctx *gin.Context, participantID string, err error) {
	switch {
	case errors.Is(err, service.ErrParticipantNotFound):
		response.RenderErr(ctx, response.ErrNotFound("participant", "ID", participantID))
	case errors.Is(err, service.ErrNoRecords):
		response.RenderErr(ctx, response.ErrNotFound("attendance records", "participant ID", participantID))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
	}
}
