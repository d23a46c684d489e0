package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/pracazumbi/presenca-api/internal/domain"
	"github.com/pracazumbi/presenca-api/internal/metrics"
	"github.com/pracazumbi/presenca-api/internal/repository"
)

var (
	ErrParticipantNotFound = repository.ErrParticipantNotFound
	ErrNoRecords           = errors.New("participant has no attendance records")
)

const encouragementTemplate = `Olá %s! 😊

Sentimos sua falta nas aulas! 💙
A turma está te esperando!

Contamos com você! 💪
- %s`

type AttendanceReader interface {
	ListRecords(ctx context.Context) ([]domain.AttendanceRecord, error)
	ListRecordsByParticipant(ctx context.Context, participantID string) ([]domain.AttendanceRecord, error)
	FindParticipant(ctx context.Context, id string) (domain.Participant, error)
	// Snapshot returns records and participants from one consistent read.
	Snapshot(ctx context.Context) ([]domain.AttendanceRecord, []domain.Participant, error)
}

type Settings struct {
	DefaultLimit           int
	MaxLimit               int
	RankingSize            int
	EncouragementThreshold float64
	Signature              string
}

type MetricsQuery struct {
	Tier  domain.RiskTier
	Limit int
}

// DashboardService answers the dashboard's questions by recomputing metrics
// from the attendance log on every call.
type DashboardService struct {
	repo     AttendanceReader
	settings atomic.Pointer[Settings]
}

func NewDashboardService(repo AttendanceReader, settings Settings) *DashboardService {
	s := &DashboardService{
		repo: repo,
	}
	s.UpdateSettings(settings)

	return s
}

// UpdateSettings swaps the dashboard settings. Safe to call while requests
// are being served.
func (s *DashboardService) UpdateSettings(settings Settings) {
	s.settings.Store(&settings)
}

func (s *DashboardService) Settings() Settings {
	return *s.settings.Load()
}

// Metrics returns the rows in q.Tier ordered by risk, highest first, cut to
// q.Limit. A non-positive limit uses the default; limits above the maximum
// are capped.
func (s *DashboardService) Metrics(ctx context.Context, q MetricsQuery) ([]domain.ParticipantMetrics, error) {
	_, _, rows, err := s.computeAll(ctx)
	if err != nil {
		return nil, err
	}

	rows = metrics.FilterByTier(rows, q.Tier)
	rows = metrics.SortByRisk(rows)

	return metrics.Top(rows, s.limit(q.Limit)), nil
}

func (s *DashboardService) ParticipantMetrics(ctx context.Context, participantID string) (domain.ParticipantMetrics, error) {
	participant, records, err := s.participantHistory(ctx, participantID)
	if err != nil {
		return domain.ParticipantMetrics{}, err
	}

	rows := metrics.Compute(records, []domain.Participant{participant})
	if len(rows) == 0 {
		return domain.ParticipantMetrics{}, ErrNoRecords
	}

	return rows[0], nil
}

func (s *DashboardService) Overview(ctx context.Context) (domain.Overview, error) {
	records, participants, rows, err := s.computeAll(ctx)
	if err != nil {
		return domain.Overview{}, err
	}

	return metrics.Summarize(records, participants, rows), nil
}

func (s *DashboardService) Ranking(ctx context.Context, size int) ([]domain.RankedParticipant, error) {
	_, _, rows, err := s.computeAll(ctx)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		size = s.Settings().RankingSize
	}

	return metrics.Rank(rows, size), nil
}

func (s *DashboardService) ExerciseStats(ctx context.Context) ([]domain.RatePoint, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListRecords -> %w", err)
	}

	return metrics.RateByExerciseType(records), nil
}

func (s *DashboardService) DailyStats(ctx context.Context) ([]domain.RatePoint, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListRecords -> %w", err)
	}

	return metrics.DailyRates(records), nil
}

func (s *DashboardService) Evolution(ctx context.Context, participantID string) ([]domain.EvolutionPoint, error) {
	_, records, err := s.participantHistory(ctx, participantID)
	if err != nil {
		return nil, err
	}

	return metrics.CumulativePresence(records), nil
}

// Encouragement drafts a message for the instructor to send when the
// participant's risk is above the configured threshold.
func (s *DashboardService) Encouragement(ctx context.Context, participantID string) (domain.Encouragement, error) {
	m, err := s.ParticipantMetrics(ctx, participantID)
	if err != nil {
		return domain.Encouragement{}, err
	}

	settings := s.Settings()
	enc := domain.Encouragement{
		ParticipantID: m.ParticipantID,
		Name:          m.Name,
		RiskScore:     m.RiskScore,
		Needed:        m.RiskScore > settings.EncouragementThreshold,
	}
	if enc.Needed {
		enc.Message = fmt.Sprintf(encouragementTemplate, m.Name, settings.Signature)
	}

	return enc, nil
}

func (s *DashboardService) computeAll(ctx context.Context) ([]domain.AttendanceRecord, []domain.Participant, []domain.ParticipantMetrics, error) {
	records, participants, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("s.repo.Snapshot -> %w", err)
	}

	return records, participants, metrics.Compute(records, participants), nil
}

func (s *DashboardService) participantHistory(ctx context.Context, participantID string) (domain.Participant, []domain.AttendanceRecord, error) {
	participant, err := s.repo.FindParticipant(ctx, participantID)
	if err != nil {
		return domain.Participant{}, nil, fmt.Errorf("s.repo.FindParticipant -> %w", err)
	}

	records, err := s.repo.ListRecordsByParticipant(ctx, participantID)
	if err != nil {
		return domain.Participant{}, nil, fmt.Errorf("s.repo.ListRecordsByParticipant -> %w", err)
	}

	return participant, records, nil
}

func (s *DashboardService) limit(requested int) int {
	settings := s.Settings()
	switch {
	case requested <= 0:
		return settings.DefaultLimit
	case settings.MaxLimit > 0 && requested > settings.MaxLimit:
		return settings.MaxLimit
	default:
		return requested
	}
}
