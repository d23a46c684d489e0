package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pracazumbi/presenca-api/internal/domain"
	"github.com/pracazumbi/presenca-api/internal/ingest"
)

// CSVRepository reads attendance straight from a spreadsheet export. The
// file is parsed again on every call so edits show up on the next request.
type CSVRepository struct {
	path string
	opts ingest.Options
}

func NewCSVRepository(path string, opts ingest.Options) *CSVRepository {
	return &CSVRepository{
		path: path,
		opts: opts,
	}
}

func (r *CSVRepository) load() (ingest.Dataset, error) {
	ds, err := ingest.ParseFile(r.path, r.opts)
	if err != nil {
		return ingest.Dataset{}, fmt.Errorf("ingest.ParseFile -> %w", err)
	}

	if len(ds.Rejected) > 0 {
		zap.L().Warn("skipped malformed attendance rows",
			zap.String("path", r.path),
			zap.Int("rejected", len(ds.Rejected)),
			zap.NamedError("first", ds.Rejected[0]),
		)
	}

	return ds, nil
}

// Snapshot returns records and participants from a single read of the file.
func (r *CSVRepository) Snapshot(ctx context.Context) ([]domain.AttendanceRecord, []domain.Participant, error) {
	ds, err := r.load()
	if err != nil {
		return nil, nil, err
	}
	return ds.Records, ds.Participants, nil
}

func (r *CSVRepository) ListRecords(ctx context.Context) ([]domain.AttendanceRecord, error) {
	ds, err := r.load()
	if err != nil {
		return nil, err
	}
	return ds.Records, nil
}

func (r *CSVRepository) ListRecordsByParticipant(ctx context.Context, participantID string) ([]domain.AttendanceRecord, error) {
	ds, err := r.load()
	if err != nil {
		return nil, err
	}

	var records []domain.AttendanceRecord
	for _, rec := range ds.Records {
		if rec.ParticipantID == participantID {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *CSVRepository) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	ds, err := r.load()
	if err != nil {
		return nil, err
	}
	return ds.Participants, nil
}

func (r *CSVRepository) FindParticipant(ctx context.Context, id string) (domain.Participant, error) {
	ds, err := r.load()
	if err != nil {
		return domain.Participant{}, err
	}

	for _, p := range ds.Participants {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Participant{}, ErrParticipantNotFound
}
