package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pracazumbi/presenca-api/internal/domain"
	"github.com/pracazumbi/presenca-api/internal/ingest"
	"github.com/pracazumbi/presenca-api/internal/repository"
)

var (
	ErrDuplicateRecord   = repository.ErrDuplicateRecord
	ErrImportUnsupported = errors.New("imports are only available with the postgres source")
)

type AttendanceWriter interface {
	Save(ctx context.Context, participants []domain.Participant, records []domain.AttendanceRecord) error
}

type ImportOptions struct {
	Dedupe        bool
	SkipMalformed bool
}

type RejectedRow struct {
	Line   int    `json:"line"`
	Field  string `json:"field,omitempty"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Participants int           `json:"participants"`
	Records      int           `json:"records"`
	Rejected     []RejectedRow `json:"rejected"`
}

type ImportService struct {
	writer AttendanceWriter
	base   ingest.Options
}

// NewImportService returns a service that stores spreadsheets through
// writer. A nil writer makes every import fail with ErrImportUnsupported.
func NewImportService(writer AttendanceWriter, base ingest.Options) *ImportService {
	return &ImportService{
		writer: writer,
		base:   base,
	}
}

func (s *ImportService) Import(ctx context.Context, r io.Reader, opts ImportOptions) (ImportResult, error) {
	if s.writer == nil {
		return ImportResult{}, ErrImportUnsupported
	}

	ingestOpts := s.base
	ingestOpts.Dedupe = ingestOpts.Dedupe || opts.Dedupe
	ingestOpts.SkipMalformed = opts.SkipMalformed

	ds, err := ingest.Parse(r, ingestOpts)
	if err != nil {
		return ImportResult{}, fmt.Errorf("ingest.Parse -> %w", err)
	}

	result := ImportResult{
		Participants: len(ds.Participants),
		Records:      len(ds.Records),
		Rejected:     make([]RejectedRow, 0, len(ds.Rejected)),
	}
	for _, rej := range ds.Rejected {
		result.Rejected = append(result.Rejected, RejectedRow{
			Line:   rej.Line,
			Field:  rej.Field,
			Value:  rej.Value,
			Reason: rej.Reason(),
		})
	}

	if len(ds.Records) == 0 {
		return result, nil
	}

	if err := s.writer.Save(ctx, ds.Participants, ds.Records); err != nil {
		return ImportResult{}, fmt.Errorf("s.writer.Save -> %w", err)
	}

	zap.L().Info("attendance imported",
		zap.Int("participants", result.Participants),
		zap.Int("records", result.Records),
		zap.Int("rejected", len(result.Rejected)),
	)

	return result, nil
}
