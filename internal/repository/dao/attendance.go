package dao

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	recordBatchSize      = 500
	participantDateIndex = "idx_attendance_participant_date"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrDuplicateRecord     = errors.New("attendance record already exists for participant and date")
)

type Participant struct {
	ID   string `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	Age  int
	Sex  string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AttendanceRecord struct {
	ID            uint        `gorm:"primaryKey"`
	ParticipantID string      `gorm:"not null;uniqueIndex:idx_attendance_participant_date"`
	Participant   Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE"`
	Date          time.Time   `gorm:"type:date;not null;uniqueIndex:idx_attendance_participant_date"`
	Present       bool        `gorm:"not null"`
	ExerciseType  string      `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
}

type AttendanceDAO struct {
	db *gorm.DB
}

func NewAttendanceDAO(db *gorm.DB) *AttendanceDAO {
	return &AttendanceDAO{
		db: db,
	}
}

// Import upserts participants and inserts records in one transaction. A
// record that repeats an existing (participant, date) pair aborts the whole
// import with ErrDuplicateRecord.
func (d *AttendanceDAO) Import(ctx context.Context, participants []Participant, records []AttendanceRecord) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(participants) > 0 {
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "age", "sex", "updated_at"}),
			}).Create(&participants)
			if result.Error != nil {
				return result.Error
			}
		}

		if len(records) > 0 {
			result := tx.Omit(clause.Associations).CreateInBatches(&records, recordBatchSize)
			if result.Error != nil {
				return result.Error
			}
		}

		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation &&
			pgErr.ConstraintName == participantDateIndex {
			return ErrDuplicateRecord
		}

		return err
	}

	return nil
}

func (d *AttendanceDAO) FindRecords(ctx context.Context) ([]AttendanceRecord, error) {
	var records []AttendanceRecord

	result := d.db.WithContext(ctx).Order("participant_id, date, id").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (d *AttendanceDAO) FindRecordsByParticipant(ctx context.Context, participantID string) ([]AttendanceRecord, error) {
	var records []AttendanceRecord

	result := d.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("date, id").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (d *AttendanceDAO) FindParticipants(ctx context.Context) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).Order("id").Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

// FindSnapshot reads records and participants in one repeatable-read
// transaction so both come from the same import.
func (d *AttendanceDAO) FindSnapshot(ctx context.Context) ([]AttendanceRecord, []Participant, error) {
	var records []AttendanceRecord
	var participants []Participant

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("participant_id, date, id").Find(&records).Error; err != nil {
			return err
		}
		return tx.Order("id").Find(&participants).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, nil, err
	}

	return records, participants, nil
}

func (d *AttendanceDAO) FindParticipantByID(ctx context.Context, id string) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).First(&participant, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}
