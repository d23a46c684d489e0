package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pracazumbi/presenca-api/internal/domain"
	"github.com/pracazumbi/presenca-api/internal/ingest"
	"github.com/pracazumbi/presenca-api/internal/repository"
	"github.com/pracazumbi/presenca-api/internal/repository/dao"
)

type fakeDAO struct {
	participants []dao.Participant
	records      []dao.AttendanceRecord
	err          error
}

func (f *fakeDAO) Import(_ context.Context, participants []dao.Participant, records []dao.AttendanceRecord) error {
	if f.err != nil {
		return f.err
	}
	f.participants = append(f.participants, participants...)
	f.records = append(f.records, records...)
	return nil
}

func (f *fakeDAO) FindRecords(context.Context) ([]dao.AttendanceRecord, error) {
	return f.records, f.err
}

func (f *fakeDAO) FindRecordsByParticipant(_ context.Context, id string) ([]dao.AttendanceRecord, error) {
	var out []dao.AttendanceRecord
	for _, r := range f.records {
		if r.ParticipantID == id {
			out = append(out, r)
		}
	}
	return out, f.err
}

func (f *fakeDAO) FindParticipants(context.Context) ([]dao.Participant, error) {
	return f.participants, f.err
}

func (f *fakeDAO) FindSnapshot(context.Context) ([]dao.AttendanceRecord, []dao.Participant, error) {
	return f.records, f.participants, f.err
}

func (f *fakeDAO) FindParticipantByID(_ context.Context, id string) (dao.Participant, error) {
	for _, p := range f.participants {
		if p.ID == id {
			return p, nil
		}
	}
	return dao.Participant{}, dao.ErrParticipantNotFound
}

var sep2 = time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)

func TestAttendanceRepository_SaveAndList(t *testing.T) {
	fake := &fakeDAO{}
	repo := repository.NewAttendanceRepository(fake)
	ctx := context.Background()

	err := repo.Save(ctx,
		[]domain.Participant{{ID: "1", Name: "Lúcia", Age: 67, Sex: "F"}},
		[]domain.AttendanceRecord{{ParticipantID: "1", Date: sep2, Present: true, ExerciseType: "dança"}},
	)
	require.NoError(t, err)

	participants, err := repo.ListParticipants(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Participant{{ID: "1", Name: "Lúcia", Age: 67, Sex: "F"}}, participants)

	records, err := repo.ListRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.AttendanceRecord{{ParticipantID: "1", Date: sep2, Present: true, ExerciseType: "dança"}}, records)

	byParticipant, err := repo.ListRecordsByParticipant(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, byParticipant, 1)

	p, err := repo.FindParticipant(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Lúcia", p.Name)

	snapRecords, snapParticipants, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, snapRecords)
	assert.Equal(t, participants, snapParticipants)
}

func TestAttendanceRepository_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := repository.NewAttendanceRepository(&fakeDAO{}).FindParticipant(ctx, "x")
	assert.ErrorIs(t, err, repository.ErrParticipantNotFound)

	boom := errors.New("connection reset")
	repo := repository.NewAttendanceRepository(&fakeDAO{err: boom})

	_, err = repo.ListRecords(ctx)
	assert.ErrorIs(t, err, boom)

	_, _, err = repo.Snapshot(ctx)
	assert.ErrorIs(t, err, boom)

	err = repo.Save(ctx, nil, nil)
	assert.ErrorIs(t, err, boom)
}

func TestCSVRepository_RereadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presencas.csv")
	require.NoError(t, os.WriteFile(path, []byte("id_aluna;nome;data;presente\n1;Ana;2024-09-02;1\n"), 0o600))

	repo := repository.NewCSVRepository(path, ingest.Options{})
	ctx := context.Background()

	records, err := repo.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.NoError(t, os.WriteFile(path, []byte("id_aluna;nome;data;presente\n1;Ana;2024-09-02;1\n2;Rosa;2024-09-02;0\n"), 0o600))

	records, err = repo.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	participants, err := repo.ListParticipants(ctx)
	require.NoError(t, err)
	assert.Len(t, participants, 2)

	byParticipant, err := repo.ListRecordsByParticipant(ctx, "2")
	require.NoError(t, err)
	require.Len(t, byParticipant, 1)
	assert.False(t, byParticipant[0].Present)

	p, err := repo.FindParticipant(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Rosa", p.Name)

	_, err = repo.FindParticipant(ctx, "3")
	assert.ErrorIs(t, err, repository.ErrParticipantNotFound)

	snapRecords, snapParticipants, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapRecords, 2)
	assert.Len(t, snapParticipants, 2)
}

func TestCSVRepository_SkipMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presencas.csv")
	body := "id_aluna;nome;data;presente\n" +
		"1;Ana;2024-09-02;1\n" +
		"2;Rosa;31/09/2024;1\n" +
		"1;Ana;2024-09-03;0\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	ctx := context.Background()

	_, err := repository.NewCSVRepository(path, ingest.Options{}).ListRecords(ctx)
	var merr *ingest.MalformedRecordError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 3, merr.Line)

	repo := repository.NewCSVRepository(path, ingest.Options{SkipMalformed: true})

	records, participants, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, []domain.Participant{{ID: "1", Name: "Ana"}}, participants)
}

func TestCSVRepository_MissingFile(t *testing.T) {
	repo := repository.NewCSVRepository(filepath.Join(t.TempDir(), "none.csv"), ingest.Options{})

	_, err := repo.ListRecords(context.Background())

	assert.ErrorIs(t, err, os.ErrNotExist)
}
