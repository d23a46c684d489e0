package repository

import (
	"context"
	"fmt"

	"github.com/pracazumbi/presenca-api/internal/domain"
	"github.com/pracazumbi/presenca-api/internal/repository/dao"
)

var (
	ErrParticipantNotFound = dao.ErrParticipantNotFound
	ErrDuplicateRecord     = dao.ErrDuplicateRecord
)

type AttendanceDAO interface {
	Import(ctx context.Context, participants []dao.Participant, records []dao.AttendanceRecord) error
	FindRecords(ctx context.Context) ([]dao.AttendanceRecord, error)
	FindRecordsByParticipant(ctx context.Context, participantID string) ([]dao.AttendanceRecord, error)
	FindParticipants(ctx context.Context) ([]dao.Participant, error)
	FindSnapshot(ctx context.Context) ([]dao.AttendanceRecord, []dao.Participant, error)
	FindParticipantByID(ctx context.Context, id string) (dao.Participant, error)
}

type AttendanceRepository struct {
	dao AttendanceDAO
}

func NewAttendanceRepository(dao AttendanceDAO) *AttendanceRepository {
	return &AttendanceRepository{
		dao: dao,
	}
}

func (r *AttendanceRepository) ListRecords(ctx context.Context) ([]domain.AttendanceRecord, error) {
	found, err := r.dao.FindRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRecords -> %w", err)
	}

	return r.recordsDaoToDomain(found), nil
}

func (r *AttendanceRepository) ListRecordsByParticipant(ctx context.Context, participantID string) ([]domain.AttendanceRecord, error) {
	found, err := r.dao.FindRecordsByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRecordsByParticipant -> %w", err)
	}

	return r.recordsDaoToDomain(found), nil
}

func (r *AttendanceRepository) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	found, err := r.dao.FindParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipants -> %w", err)
	}

	return r.participantsDaoToDomain(found), nil
}

// Snapshot returns records and participants read together.
func (r *AttendanceRepository) Snapshot(ctx context.Context) ([]domain.AttendanceRecord, []domain.Participant, error) {
	records, participants, err := r.dao.FindSnapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("r.dao.FindSnapshot -> %w", err)
	}

	return r.recordsDaoToDomain(records), r.participantsDaoToDomain(participants), nil
}

func (r *AttendanceRepository) FindParticipant(ctx context.Context, id string) (domain.Participant, error) {
	found, err := r.dao.FindParticipantByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindParticipantByID -> %w", err)
	}

	return r.participantDaoToDomain(found), nil
}

func (r *AttendanceRepository) Save(ctx context.Context, participants []domain.Participant, records []domain.AttendanceRecord) error {
	daoParticipants := make([]dao.Participant, 0, len(participants))
	for _, p := range participants {
		daoParticipants = append(daoParticipants, dao.Participant{
			ID:   p.ID,
			Name: p.Name,
			Age:  p.Age,
			Sex:  p.Sex,
		})
	}

	daoRecords := make([]dao.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		daoRecords = append(daoRecords, dao.AttendanceRecord{
			ParticipantID: rec.ParticipantID,
			Date:          rec.Date,
			Present:       rec.Present,
			ExerciseType:  rec.ExerciseType,
		})
	}

	if err := r.dao.Import(ctx, daoParticipants, daoRecords); err != nil {
		return fmt.Errorf("r.dao.Import -> %w", err)
	}

	return nil
}

func (r *AttendanceRepository) recordsDaoToDomain(records []dao.AttendanceRecord) []domain.AttendanceRecord {
	out := make([]domain.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.AttendanceRecord{
			ParticipantID: rec.ParticipantID,
			Date:          rec.Date.UTC(),
			Present:       rec.Present,
			ExerciseType:  rec.ExerciseType,
		})
	}
	return out
}

func (r *AttendanceRepository) participantsDaoToDomain(found []dao.Participant) []domain.Participant {
	participants := make([]domain.Participant, 0, len(found))
	for _, p := range found {
		participants = append(participants, r.participantDaoToDomain(p))
	}
	return participants
}

func (r *AttendanceRepository) participantDaoToDomain(p dao.Participant) domain.Participant {
	return domain.Participant{
		ID:   p.ID,
		Name: p.Name,
		Age:  p.Age,
		Sex:  p.Sex,
	}
}
