package domain

import (
	"testing"

	"github.com/google/uuid"
)

func newTestGoal(t *testing.T, target float64) *Goal {
	t.Helper()

	goal, err := NewGoal("Bill 120 hours", "professional", GoalPeriodMonthly, target, "hours", uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return goal
}

func TestNewGoal(t *testing.T) {
	t.Parallel()

	goal := newTestGoal(t, 120)
	if goal.Status != GoalStatusActive {
		t.Errorf("Expected active status, got %s", goal.Status)
	}
	if goal.Progress() != 0 {
		t.Errorf("Expected zero progress, got %f", goal.Progress())
	}
}

func TestNewGoalValidation(t *testing.T) {
	t.Parallel()

	owner := uuid.New()

	if _, err := NewGoal("", "personal", GoalPeriodWeekly, 10, "km", owner); err != ErrGoalTitleEmpty {
		t.Errorf("Expected ErrGoalTitleEmpty, got %v", err)
	}
	if _, err := NewGoal("G", "personal", GoalPeriod("daily"), 10, "km", owner); err != ErrGoalPeriodInvalid {
		t.Errorf("Expected ErrGoalPeriodInvalid, got %v", err)
	}
	if _, err := NewGoal("G", "personal", GoalPeriodWeekly, 0, "km", owner); err != ErrGoalTargetValue {
		t.Errorf("Expected ErrGoalTargetValue, got %v", err)
	}
}

func TestGoalUpdateProgress(t *testing.T) {
	t.Parallel()

	goal := newTestGoal(t, 100)

	goal.UpdateProgress(50)
	if goal.Progress() != 50 {
		t.Errorf("Expected 50 percent, got %f", goal.Progress())
	}
	if goal.Status != GoalStatusActive {
		t.Errorf("Expected active below target, got %s", goal.Status)
	}

	// Reaching the target flips the goal to achieved.
	goal.UpdateProgress(100)
	if goal.Status != GoalStatusAchieved {
		t.Errorf("Expected achieved at target, got %s", goal.Status)
	}

	// Overshooting reads as more than 100 percent.
	goal.UpdateProgress(150)
	if goal.Progress() != 150 {
		t.Errorf("Expected 150 percent, got %f", goal.Progress())
	}
	if goal.Status != GoalStatusAchieved {
		t.Errorf("Expected achieved past target, got %s", goal.Status)
	}

	// Dropping back below the target reopens the goal.
	goal.UpdateProgress(90)
	if goal.Status != GoalStatusActive {
		t.Errorf("Expected active after dropping below target, got %s", goal.Status)
	}
}
