package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents whether a project is currently being worked.
type ProjectStatus string

// Possible project status values
const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusPaused    ProjectStatus = "paused"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// Project-specific validation errors
var (
	ErrProjectIDEmpty       = errors.New("project ID cannot be empty")
	ErrProjectNameEmpty     = errors.New("project name cannot be empty")
	ErrProjectStatusInvalid = errors.New("invalid project status")
	ErrProjectNegativeSpend = errors.New("spent increment cannot be negative")
	ErrProjectNegativeHours = errors.New("planned hours cannot be negative")
)

// Project is the aggregate other entities hang off. Spent only ever grows:
// AddSpent rejects negative deltas and there is no way to decrement.
type Project struct {
	ID                uuid.UUID     `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	ClientID          *uuid.UUID    `json:"client_id,omitempty"`
	Budget            Amount        `json:"budget"`
	Spent             Amount        `json:"spent"`
	Currency          Currency      `json:"currency"`
	Status            ProjectStatus `json:"status"`
	TotalHoursPlanned float64       `json:"total_hours_planned"`
	TeamMembers       []uuid.UUID   `json:"team_members,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// NewProject creates a new active Project with a fresh UUID, zero spend and
// UTC timestamps. Returns an error if validation fails.
func NewProject(
	name string,
	budget Amount,
	currency Currency,
	totalHoursPlanned float64,
) (*Project, error) {
	now := time.Now().UTC()
	project := &Project{
		ID:                uuid.New(),
		Name:              name,
		Budget:            budget,
		Spent:             ZeroAmount(),
		Currency:          currency,
		Status:            ProjectStatusActive,
		TotalHoursPlanned: totalHoursPlanned,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

// Validate checks if the Project has valid data.
// Returns an error if any field fails validation.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProjectIDEmpty
	}

	if p.Name == "" {
		return ErrProjectNameEmpty
	}

	if !isValidCurrency(p.Currency) {
		return ErrInvalidCurrency
	}

	if !isValidProjectStatus(p.Status) {
		return ErrProjectStatusInvalid
	}

	if p.TotalHoursPlanned < 0 {
		return ErrProjectNegativeHours
	}

	return nil
}

// AddSpent increments the recorded spend by the given delta. Negative deltas
// are rejected before any state changes, so a failed call leaves Spent as it
// was.
func (p *Project) AddSpent(delta decimal.Decimal) error {
	if delta.IsNegative() {
		return ErrProjectNegativeSpend
	}

	spent, err := NewAmount(p.Spent.Decimal().Add(delta))
	if err != nil {
		return err
	}

	p.Spent = spent
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// SetStatus moves the project to the given status.
func (p *Project) SetStatus(status ProjectStatus) error {
	if !isValidProjectStatus(status) {
		return ErrProjectStatusInvalid
	}

	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// AddTeamMember adds a member reference. Duplicate adds are no-ops.
func (p *Project) AddTeamMember(userID uuid.UUID) {
	for _, existing := range p.TeamMembers {
		if existing == userID {
			return
		}
	}

	p.TeamMembers = append(p.TeamMembers, userID)
	p.UpdatedAt = time.Now().UTC()
}

// IsActive reports whether the project counts toward dashboard aggregates.
func (p *Project) IsActive() bool {
	return p.Status == ProjectStatusActive
}

// isValidProjectStatus checks if the given value is a valid ProjectStatus.
func isValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusActive, ProjectStatusPaused, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	default:
		return false
	}
}

// ParseProjectStatus validates a status literal and returns the typed value.
func ParseProjectStatus(v string) (ProjectStatus, error) {
	s := ProjectStatus(v)
	if !isValidProjectStatus(s) {
		return "", ErrProjectStatusInvalid
	}
	return s, nil
}
