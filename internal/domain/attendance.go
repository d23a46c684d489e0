package domain

import "time"

type AttendanceRecord struct {
	ParticipantID string    `json:"participant_id"`
	Date          time.Time `json:"date"`
	Present       bool      `json:"present"`
	ExerciseType  string    `json:"exercise_type"`
}

type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	Sex  string `json:"sex,omitempty"`
}
