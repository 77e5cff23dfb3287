package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// GoalStatus represents whether a goal is still being pursued.
type GoalStatus string

// Possible goal status values
const (
	GoalStatusActive   GoalStatus = "active"
	GoalStatusAchieved GoalStatus = "achieved"
)

// GoalPeriod represents the measurement window of a goal.
type GoalPeriod string

// Possible goal period values
const (
	GoalPeriodWeekly    GoalPeriod = "weekly"
	GoalPeriodMonthly   GoalPeriod = "monthly"
	GoalPeriodQuarterly GoalPeriod = "quarterly"
	GoalPeriodYearly    GoalPeriod = "yearly"
)

// Goal-specific validation errors
var (
	ErrGoalIDEmpty       = errors.New("goal ID cannot be empty")
	ErrGoalTitleEmpty    = errors.New("goal title cannot be empty")
	ErrGoalOwnerIDEmpty  = errors.New("goal owner ID cannot be empty")
	ErrGoalPeriodInvalid = errors.New("invalid goal period")
	ErrGoalTargetValue   = errors.New("goal target value must be positive")
)

// Goal represents a measurable objective. Progress is derived from current
// versus target value and deliberately unclamped: overshooting the target
// reads as more than 100 percent. Negative current values are accepted, the
// source system tolerates them and only the achieved threshold is enforced.
type Goal struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	Category     string     `json:"category"`
	Period       GoalPeriod `json:"period"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Unit         string     `json:"unit"`
	OwnerID      uuid.UUID  `json:"owner_id"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Status       GoalStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewGoal creates a new active Goal with a fresh UUID and UTC timestamps.
// Returns an error if validation fails.
func NewGoal(
	title string,
	goalType string,
	period GoalPeriod,
	targetValue float64,
	unit string,
	ownerID uuid.UUID,
) (*Goal, error) {
	now := time.Now().UTC()
	goal := &Goal{
		ID:          uuid.New(),
		Title:       title,
		Type:        goalType,
		Period:      period,
		TargetValue: targetValue,
		Unit:        unit,
		OwnerID:     ownerID,
		Status:      GoalStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	return goal, nil
}

// Validate checks if the Goal has valid data.
// Returns an error if any field fails validation.
func (g *Goal) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGoalIDEmpty
	}

	if g.Title == "" {
		return ErrGoalTitleEmpty
	}

	if g.OwnerID == uuid.Nil {
		return ErrGoalOwnerIDEmpty
	}

	if !isValidGoalPeriod(g.Period) {
		return ErrGoalPeriodInvalid
	}

	if g.TargetValue <= 0 {
		return ErrGoalTargetValue
	}

	return nil
}

// Progress returns round(currentValue/targetValue*100). Values past the
// target exceed 100.
func (g *Goal) Progress() float64 {
	return math.Round(g.CurrentValue / g.TargetValue * 100)
}

// IsAchieved reports whether the current value has reached the target.
func (g *Goal) IsAchieved() bool {
	return g.CurrentValue >= g.TargetValue
}

// UpdateProgress records a new current value and flips status to achieved
// once the target is reached. Dropping back under the target reactivates the
// goal.
func (g *Goal) UpdateProgress(currentValue float64) {
	g.CurrentValue = currentValue

	if g.IsAchieved() {
		g.Status = GoalStatusAchieved
	} else {
		g.Status = GoalStatusActive
	}

	g.UpdatedAt = time.Now().UTC()
}

// ParseGoalPeriod validates a period literal and returns the typed value.
func ParseGoalPeriod(v string) (GoalPeriod, error) {
	p := GoalPeriod(v)
	if !isValidGoalPeriod(p) {
		return "", ErrGoalPeriodInvalid
	}
	return p, nil
}

// isValidGoalPeriod checks if the given value is a valid GoalPeriod.
func isValidGoalPeriod(p GoalPeriod) bool {
	switch p {
	case GoalPeriodWeekly, GoalPeriodMonthly, GoalPeriodQuarterly, GoalPeriodYearly:
		return true
	default:
		return false
	}
}
