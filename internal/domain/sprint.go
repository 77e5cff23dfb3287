package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SprintStatus represents the lifecycle state of a sprint.
type SprintStatus string

// Possible sprint status values
const (
	SprintStatusPlanning  SprintStatus = "planning"
	SprintStatusActive    SprintStatus = "active"
	SprintStatusCompleted SprintStatus = "completed"
)

// Sprint-specific validation errors
var (
	ErrSprintIDEmpty          = errors.New("sprint ID cannot be empty")
	ErrSprintNameEmpty        = errors.New("sprint name cannot be empty")
	ErrSprintProjectIDEmpty   = errors.New("sprint project ID cannot be empty")
	ErrSprintStatusInvalid    = errors.New("invalid sprint status")
	ErrSprintDatesInverted    = errors.New("sprint end date cannot precede start date")
	ErrSprintNotPlanning      = errors.New("sprint can only be activated from planning")
	ErrSprintAlreadyCompleted = errors.New("sprint is already completed")
)

// Sprint represents a time-boxed iteration within a project.
type Sprint struct {
	ID                   uuid.UUID    `json:"id"`
	Name                 string       `json:"name"`
	ProjectID            uuid.UUID    `json:"project_id"`
	Goal                 string       `json:"goal"`
	StartDate            time.Time    `json:"start_date"`
	EndDate              time.Time    `json:"end_date"`
	Status               SprintStatus `json:"status"`
	Velocity             int          `json:"velocity"`
	StoryPointsCommitted int          `json:"story_points_committed"`
	StoryPointsCompleted int          `json:"story_points_completed"`
	TeamMembers          []uuid.UUID  `json:"team_members,omitempty"`
	RetrospectiveNotes   string       `json:"retrospective_notes,omitempty"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// NewSprint creates a new Sprint in planning status with a fresh UUID and UTC
// timestamps. Returns an error if validation fails.
func NewSprint(
	name string,
	projectID uuid.UUID,
	goal string,
	startDate time.Time,
	endDate time.Time,
) (*Sprint, error) {
	now := time.Now().UTC()
	sprint := &Sprint{
		ID:        uuid.New(),
		Name:      name,
		ProjectID: projectID,
		Goal:      goal,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    SprintStatusPlanning,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := sprint.Validate(); err != nil {
		return nil, err
	}

	return sprint, nil
}

// Validate checks if the Sprint has valid data.
// Returns an error if any field fails validation.
func (s *Sprint) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSprintIDEmpty
	}

	if s.Name == "" {
		return ErrSprintNameEmpty
	}

	if s.ProjectID == uuid.Nil {
		return ErrSprintProjectIDEmpty
	}

	if !isValidSprintStatus(s.Status) {
		return ErrSprintStatusInvalid
	}

	if !s.StartDate.IsZero() && !s.EndDate.IsZero() && s.EndDate.Before(s.StartDate) {
		return ErrSprintDatesInverted
	}

	return nil
}

// Activate moves the sprint from planning to active.
func (s *Sprint) Activate() error {
	if s.Status == SprintStatusCompleted {
		return ErrSprintAlreadyCompleted
	}
	if s.Status != SprintStatusPlanning {
		return ErrSprintNotPlanning
	}

	s.Status = SprintStatusActive
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete finishes the sprint: status becomes completed, the completed story
// points are recorded and velocity is set to that value. Completing an
// already-completed sprint is rejected rather than silently repeated.
func (s *Sprint) Complete(storyPointsCompleted int) error {
	if s.Status == SprintStatusCompleted {
		return ErrSprintAlreadyCompleted
	}

	s.Status = SprintStatusCompleted
	s.StoryPointsCompleted = storyPointsCompleted
	s.Velocity = storyPointsCompleted
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// CommitStoryPoints records the points committed for the iteration.
func (s *Sprint) CommitStoryPoints(points int) {
	s.StoryPointsCommitted = points
	s.UpdatedAt = time.Now().UTC()
}

// AddTeamMember adds a member reference. Duplicate adds are no-ops.
func (s *Sprint) AddTeamMember(userID uuid.UUID) {
	for _, existing := range s.TeamMembers {
		if existing == userID {
			return
		}
	}

	s.TeamMembers = append(s.TeamMembers, userID)
	s.UpdatedAt = time.Now().UTC()
}

// SetRetrospectiveNotes records the retrospective outcome.
func (s *Sprint) SetRetrospectiveNotes(notes string) {
	s.RetrospectiveNotes = notes
	s.UpdatedAt = time.Now().UTC()
}

// ParseSprintStatus validates a status literal and returns the typed value.
func ParseSprintStatus(v string) (SprintStatus, error) {
	s := SprintStatus(v)
	if !isValidSprintStatus(s) {
		return "", ErrSprintStatusInvalid
	}
	return s, nil
}

// isValidSprintStatus checks if the given status is a valid SprintStatus.
func isValidSprintStatus(s SprintStatus) bool {
	switch s {
	case SprintStatusPlanning, SprintStatusActive, SprintStatusCompleted:
		return true
	default:
		return false
	}
}
