package domain

import (
	"testing"

	"github.com/google/uuid"
)

func newTestTask(t *testing.T) *Task {
	t.Helper()

	task, err := NewTask("Implement login", uuid.New(), TaskPriorityMedium, 8, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return task
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	task := newTestTask(t)

	if task.Status != TaskStatusTodo {
		t.Errorf("Expected todo status, got %s", task.Status)
	}
	if task.CompletedAt != nil {
		t.Error("Expected no completion timestamp on a new task")
	}
	if task.ActualHours != 0 {
		t.Errorf("Expected zero actual hours, got %f", task.ActualHours)
	}
}

func TestNewTaskValidation(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()

	if _, err := NewTask("", projectID, TaskPriorityLow, 1, 1); err != ErrTaskTitleEmpty {
		t.Errorf("Expected ErrTaskTitleEmpty, got %v", err)
	}
	if _, err := NewTask("T", uuid.Nil, TaskPriorityLow, 1, 1); err != ErrTaskProjectIDEmpty {
		t.Errorf("Expected ErrTaskProjectIDEmpty, got %v", err)
	}
	if _, err := NewTask("T", projectID, TaskPriority("asap"), 1, 1); err != ErrTaskPriorityInvalid {
		t.Errorf("Expected ErrTaskPriorityInvalid, got %v", err)
	}
	if _, err := NewTask("T", projectID, TaskPriorityLow, -1, 1); err != ErrTaskNegativeHours {
		t.Errorf("Expected ErrTaskNegativeHours, got %v", err)
	}
	if _, err := NewTask("T", projectID, TaskPriorityLow, 1, -1); err != ErrTaskNegativePoints {
		t.Errorf("Expected ErrTaskNegativePoints, got %v", err)
	}
}

func TestSetStatusStampsCompletion(t *testing.T) {
	t.Parallel()

	task := newTestTask(t)

	if err := task.SetStatus(TaskStatusDone); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("Expected CompletedAt to be stamped when reaching done")
	}

	// Leaving done clears the stamp.
	if err := task.SetStatus(TaskStatusInProgress); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.CompletedAt != nil {
		t.Error("Expected CompletedAt to be cleared when leaving done")
	}
}

func TestSetActualHours(t *testing.T) {
	t.Parallel()

	task := newTestTask(t)

	if err := task.SetActualHours(12.5); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.ActualHours != 12.5 {
		t.Errorf("Expected 12.5 hours, got %f", task.ActualHours)
	}

	if err := task.SetActualHours(-1); err != ErrTaskNegativeHours {
		t.Errorf("Expected ErrTaskNegativeHours, got %v", err)
	}
}

func TestAddDependency(t *testing.T) {
	t.Parallel()

	task := newTestTask(t)
	dep := uuid.New()

	if err := task.AddDependency(dep); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// Duplicate add is a no-op.
	if err := task.AddDependency(dep); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(task.Dependencies) != 1 {
		t.Errorf("Expected 1 dependency, got %d", len(task.Dependencies))
	}

	if err := task.AddDependency(task.ID); err != ErrTaskSelfDependency {
		t.Errorf("Expected ErrTaskSelfDependency, got %v", err)
	}
}

func TestWouldCreateDependencyCycle(t *testing.T) {
	t.Parallel()

	a, b, c := uuid.New(), uuid.New(), uuid.New()

	// a → b → c already recorded; adding c → a closes the loop.
	edges := map[uuid.UUID][]uuid.UUID{
		a: {b},
		b: {c},
	}

	if !WouldCreateDependencyCycle(c, a, edges) {
		t.Error("Expected multi-hop cycle c→a→b→c to be detected")
	}
	if WouldCreateDependencyCycle(a, c, edges) {
		t.Error("Expected a→c to be acyclic")
	}
	if !WouldCreateDependencyCycle(a, a, edges) {
		t.Error("Expected self-edge to count as a cycle")
	}
	if !WouldCreateDependencyCycle(b, a, edges) {
		t.Error("Expected direct back edge b→a to be detected")
	}
}

func TestSoftDeleteKeepsReferences(t *testing.T) {
	t.Parallel()

	task := newTestTask(t)
	dep := uuid.New()
	sprintID := uuid.New()
	if err := task.AddDependency(dep); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	task.AssignToSprint(sprintID)

	task.SoftDelete()

	if !task.IsDeleted() {
		t.Error("Expected task to report deleted")
	}
	if len(task.Dependencies) != 1 || task.Dependencies[0] != dep {
		t.Error("Expected dependency references to survive soft delete")
	}
	if task.SprintID == nil || *task.SprintID != sprintID {
		t.Error("Expected sprint reference to survive soft delete")
	}
}
