package models

import "time"

// HabitCheckin records one habit-day outcome. The storage layer does not
// enforce uniqueness on (TaskID, CheckinDate); avoiding duplicate check-ins
// for the same day is the caller's responsibility.
type HabitCheckin struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	CheckinDate time.Time `json:"checkinDate"`
	Completed   bool      `json:"completed"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
