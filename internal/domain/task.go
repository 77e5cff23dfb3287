package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the workflow state of a task. The set is closed but no
// transition table is enforced; any valid status can follow any other.
type TaskStatus string

// Possible task status values
const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskPriority represents how urgent a task is.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task-specific validation errors
var (
	ErrTaskIDEmpty         = errors.New("task ID cannot be empty")
	ErrTaskTitleEmpty      = errors.New("task title cannot be empty")
	ErrTaskProjectIDEmpty  = errors.New("task project ID cannot be empty")
	ErrTaskStatusInvalid   = errors.New("invalid task status")
	ErrTaskPriorityInvalid = errors.New("invalid task priority")
	ErrTaskNegativeHours   = errors.New("task hours cannot be negative")
	ErrTaskNegativePoints  = errors.New("task story points cannot be negative")
	ErrTaskSelfDependency  = errors.New("task cannot depend on itself")
	ErrTaskDependencyCycle = errors.New("dependency would create a cycle")
	ErrTaskSelfSubtask     = errors.New("task cannot be its own subtask")
)

// Task represents a unit of work inside a project, optionally scheduled into a
// sprint. ActualHours is maintained by callers that sum the task's time
// entries; the entity never recomputes it on its own.
type Task struct {
	ID             uuid.UUID    `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	ProjectID      uuid.UUID    `json:"project_id"`
	SprintID       *uuid.UUID   `json:"sprint_id,omitempty"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	AssignedTo     *uuid.UUID   `json:"assigned_to,omitempty"`
	EstimatedHours float64      `json:"estimated_hours"`
	ActualHours    float64      `json:"actual_hours"`
	StoryPoints    int          `json:"story_points"`
	Tags           []string     `json:"tags,omitempty"`
	Dependencies   []uuid.UUID  `json:"dependencies,omitempty"`
	Subtasks       []uuid.UUID  `json:"subtasks,omitempty"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	DeletedAt      *time.Time   `json:"deleted_at,omitempty"`
}

// NewTask creates a new Task in todo status with a fresh UUID and UTC timestamps.
// Returns an error if validation fails.
func NewTask(
	title string,
	projectID uuid.UUID,
	priority TaskPriority,
	estimatedHours float64,
	storyPoints int,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:             uuid.New(),
		Title:          title,
		ProjectID:      projectID,
		Status:         TaskStatusTodo,
		Priority:       priority,
		EstimatedHours: estimatedHours,
		StoryPoints:    storyPoints,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if t.ProjectID == uuid.Nil {
		return ErrTaskProjectIDEmpty
	}

	if !isValidTaskStatus(t.Status) {
		return ErrTaskStatusInvalid
	}

	if !isValidTaskPriority(t.Priority) {
		return ErrTaskPriorityInvalid
	}

	if t.EstimatedHours < 0 || t.ActualHours < 0 {
		return ErrTaskNegativeHours
	}

	if t.StoryPoints < 0 {
		return ErrTaskNegativePoints
	}

	return nil
}

// SetStatus moves the task to the given status. Reaching done stamps
// CompletedAt; leaving done clears it.
func (t *Task) SetStatus(status TaskStatus) error {
	if !isValidTaskStatus(status) {
		return ErrTaskStatusInvalid
	}

	now := time.Now().UTC()
	switch {
	case status == TaskStatusDone && t.Status != TaskStatusDone:
		t.CompletedAt = &now
	case status != TaskStatusDone:
		t.CompletedAt = nil
	}

	t.Status = status
	t.UpdatedAt = now
	return nil
}

// SetPriority changes the task priority.
func (t *Task) SetPriority(priority TaskPriority) error {
	if !isValidTaskPriority(priority) {
		return ErrTaskPriorityInvalid
	}

	t.Priority = priority
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Assign sets the assignee reference.
func (t *Task) Assign(userID uuid.UUID) {
	t.AssignedTo = &userID
	t.UpdatedAt = time.Now().UTC()
}

// AssignToSprint schedules the task into a sprint.
func (t *Task) AssignToSprint(sprintID uuid.UUID) {
	t.SprintID = &sprintID
	t.UpdatedAt = time.Now().UTC()
}

// SetActualHours records the summed worked hours for the task. Callers derive
// the value from the task's time entries.
func (t *Task) SetActualHours(hours float64) error {
	if hours < 0 {
		return ErrTaskNegativeHours
	}

	t.ActualHours = hours
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// AddDependency records that this task depends on another. Adding an existing
// dependency is a no-op; depending on itself is rejected. Cycle detection
// across the wider graph is the caller's job via WouldCreateDependencyCycle,
// since it needs edges this entity does not hold.
func (t *Task) AddDependency(depID uuid.UUID) error {
	if depID == t.ID {
		return ErrTaskSelfDependency
	}

	for _, existing := range t.Dependencies {
		if existing == depID {
			return nil
		}
	}

	t.Dependencies = append(t.Dependencies, depID)
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// AddSubtask records a subtask reference. Duplicate adds are no-ops.
func (t *Task) AddSubtask(subtaskID uuid.UUID) error {
	if subtaskID == t.ID {
		return ErrTaskSelfSubtask
	}

	for _, existing := range t.Subtasks {
		if existing == subtaskID {
			return nil
		}
	}

	t.Subtasks = append(t.Subtasks, subtaskID)
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// SoftDelete marks the task deleted. Project, sprint and dependency references
// stay intact on the soft-deleted row.
func (t *Task) SoftDelete() {
	now := time.Now().UTC()
	t.DeletedAt = &now
	t.UpdatedAt = now
}

// IsDeleted reports whether the task has been soft-deleted.
func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

// WouldCreateDependencyCycle reports whether adding the edge taskID→dependsOn
// closes a cycle in the dependency graph. edges maps each task to the tasks it
// already depends on. The walk follows every multi-hop chain, not just the
// direct back-edge.
func WouldCreateDependencyCycle(taskID, dependsOn uuid.UUID, edges map[uuid.UUID][]uuid.UUID) bool {
	if taskID == dependsOn {
		return true
	}

	// DFS from the new dependency; a path back to taskID closes a cycle.
	visited := make(map[uuid.UUID]bool)
	stack := []uuid.UUID{dependsOn}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == taskID {
			return true
		}

		if visited[current] {
			continue
		}
		visited[current] = true

		stack = append(stack, edges[current]...)
	}

	return false
}

// ParseTaskStatus validates a status literal and returns the typed value.
func ParseTaskStatus(v string) (TaskStatus, error) {
	s := TaskStatus(v)
	if !isValidTaskStatus(s) {
		return "", ErrTaskStatusInvalid
	}
	return s, nil
}

// ParseTaskPriority validates a priority literal and returns the typed value.
func ParseTaskPriority(v string) (TaskPriority, error) {
	p := TaskPriority(v)
	if !isValidTaskPriority(p) {
		return "", ErrTaskPriorityInvalid
	}
	return p, nil
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// isValidTaskPriority checks if the given priority is a valid TaskPriority.
func isValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	default:
		return false
	}
}
