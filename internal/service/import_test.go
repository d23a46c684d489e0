package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pracazumbi/presenca-api/internal/domain"
	"github.com/pracazumbi/presenca-api/internal/ingest"
	"github.com/pracazumbi/presenca-api/internal/service"
)

type recordingWriter struct {
	calls        int
	participants []domain.Participant
	records      []domain.AttendanceRecord
	err          error
}

func (w *recordingWriter) Save(_ context.Context, participants []domain.Participant, records []domain.AttendanceRecord) error {
	w.calls++
	w.participants = participants
	w.records = records
	return w.err
}

const upload = `id_aluna;nome;idade;data;presente;tipo_exercicio
1;Lúcia;67;02/09/2024;1;alongamento
2;Júlia;71;02/09/2024;0;alongamento
1;Lúcia;67;03/09/2024;talvez;caminhada
1;Lúcia;67;02/09/2024;0;alongamento
`

func TestImportService_Import(t *testing.T) {
	w := &recordingWriter{}
	svc := service.NewImportService(w, ingest.Options{})

	res, err := svc.Import(context.Background(), strings.NewReader(upload), service.ImportOptions{
		Dedupe:        true,
		SkipMalformed: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Participants)
	assert.Equal(t, 2, res.Records)
	assert.Equal(t, []service.RejectedRow{{
		Line:   4,
		Field:  "present",
		Value:  "talvez",
		Reason: ingest.ErrInvalidPresence.Error(),
	}}, res.Rejected)

	assert.Equal(t, 1, w.calls)
	require.Len(t, w.records, 2)
	assert.False(t, w.records[0].Present, "the last row for a day wins")
}

func TestImportService_Malformed(t *testing.T) {
	w := &recordingWriter{}
	svc := service.NewImportService(w, ingest.Options{})

	_, err := svc.Import(context.Background(), strings.NewReader(upload), service.ImportOptions{})

	var merr *ingest.MalformedRecordError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 4, merr.Line)
	assert.ErrorIs(t, err, ingest.ErrInvalidPresence)
	assert.Zero(t, w.calls)
}

func TestImportService_NothingToSave(t *testing.T) {
	w := &recordingWriter{}
	svc := service.NewImportService(w, ingest.Options{})

	res, err := svc.Import(context.Background(), strings.NewReader("id_aluna;data;presente\n"), service.ImportOptions{})
	require.NoError(t, err)

	assert.Zero(t, res.Records)
	assert.NotNil(t, res.Rejected)
	assert.Zero(t, w.calls)
}

func TestImportService_DuplicateRecord(t *testing.T) {
	w := &recordingWriter{err: service.ErrDuplicateRecord}
	svc := service.NewImportService(w, ingest.Options{})

	in := "id_aluna;data;presente\n1;2024-09-02;1\n"
	_, err := svc.Import(context.Background(), strings.NewReader(in), service.ImportOptions{})

	assert.ErrorIs(t, err, service.ErrDuplicateRecord)
}

func TestImportService_Unsupported(t *testing.T) {
	svc := service.NewImportService(nil, ingest.Options{})

	_, err := svc.Import(context.Background(), strings.NewReader(upload), service.ImportOptions{})

	assert.True(t, errors.Is(err, service.ErrImportUnsupported))
}
