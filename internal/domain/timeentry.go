package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TimeEntry-specific validation errors
var (
	ErrTimeEntryIDEmpty     = errors.New("time entry ID cannot be empty")
	ErrTimeEntryTaskIDEmpty = errors.New("time entry task ID cannot be empty")
	ErrTimeEntryUserIDEmpty = errors.New("time entry user ID cannot be empty")
	ErrTimeEntryHours       = errors.New("time entry hours must be positive")
	ErrTimeEntryDateZero    = errors.New("time entry date cannot be zero")
)

// TimeEntry records hours a user worked on a task. Fractional hours are
// allowed; zero or negative are not.
type TimeEntry struct {
	ID          uuid.UUID  `json:"id"`
	TaskID      uuid.UUID  `json:"task_id"`
	UserID      uuid.UUID  `json:"user_id"`
	Hours       float64    `json:"hours"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// NewTimeEntry creates a new TimeEntry with a fresh UUID and UTC timestamps.
// Returns an error if validation fails.
func NewTimeEntry(
	taskID uuid.UUID,
	userID uuid.UUID,
	hours float64,
	date time.Time,
	description string,
) (*TimeEntry, error) {
	now := time.Now().UTC()
	entry := &TimeEntry{
		ID:          uuid.New(),
		TaskID:      taskID,
		UserID:      userID,
		Hours:       hours,
		Date:        date,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the TimeEntry has valid data.
// Returns an error if any field fails validation.
func (e *TimeEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrTimeEntryIDEmpty
	}

	if e.TaskID == uuid.Nil {
		return ErrTimeEntryTaskIDEmpty
	}

	if e.UserID == uuid.Nil {
		return ErrTimeEntryUserIDEmpty
	}

	if e.Hours <= 0 {
		return ErrTimeEntryHours
	}

	if e.Date.IsZero() {
		return ErrTimeEntryDateZero
	}

	return nil
}

// SetHours updates the worked hours.
func (e *TimeEntry) SetHours(hours float64) error {
	if hours <= 0 {
		return ErrTimeEntryHours
	}

	e.Hours = hours
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// SoftDelete marks the entry deleted. The task and user references stay intact.
func (e *TimeEntry) SoftDelete() {
	now := time.Now().UTC()
	e.DeletedAt = &now
	e.UpdatedAt = now
}

// IsDeleted reports whether the entry has been soft-deleted.
func (e *TimeEntry) IsDeleted() bool {
	return e.DeletedAt != nil
}
