package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/store"
)

// CreateTaskCommand carries the input for creating a task.
type CreateTaskCommand struct {
	Title          string
	Description    string
	ProjectID      uuid.UUID
	SprintID       *uuid.UUID
	AssigneeID     *uuid.UUID
	Priority       string
	EstimatedHours float64
	StoryPoints    int
	Tags           []string
}

// LogTimeCommand carries the input for logging worked hours against a task.
type LogTimeCommand struct {
	TaskID      uuid.UUID
	UserID      uuid.UUID
	Hours       float64
	Date        time.Time
	Description string
}

// TaskService provides task lifecycle and time tracking operations.
type TaskService interface {
	// CreateTask stores a new todo task under an existing project.
	CreateTask(ctx context.Context, cmd CreateTaskCommand) (*domain.Task, error)

	// GetTask returns a task by ID.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListProjectTasks returns the non-deleted tasks of a project.
	ListProjectTasks(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)

	// UpdateStatus moves a task to the given status, stamping or clearing its
	// completion time as appropriate.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Task, error)

	// AddDependency records that a task depends on another task of the same
	// project. Dependencies that would close a cycle are rejected.
	AddDependency(ctx context.Context, taskID, dependsOn uuid.UUID) (*domain.Task, error)

	// AddSubtask records a parent/subtask relationship.
	AddSubtask(ctx context.Context, taskID, subtaskID uuid.UUID) (*domain.Task, error)

	// AssignToSprint places a task into a sprint.
	AssignToSprint(ctx context.Context, taskID, sprintID uuid.UUID) (*domain.Task, error)

	// LogTime stores a time entry and refreshes the task's actual hours from
	// the surviving entries, both inside one database transaction.
	LogTime(ctx context.Context, cmd LogTimeCommand) (*domain.TimeEntry, error)

	// DeleteTimeEntry soft-deletes a time entry and refreshes the owning
	// task's actual hours, both inside one database transaction.
	DeleteTimeEntry(ctx context.Context, entryID uuid.UUID) error

	// DeleteTask soft-deletes a task. Dependency and subtask references held
	// by other tasks are left in place.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	db          *sql.DB
	tasks       store.TaskStore
	projects    store.ProjectStore
	timeEntries store.TimeEntryStore
	logger      *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	db *sql.DB,
	tasks store.TaskStore,
	projects store.ProjectStore,
	timeEntries store.TimeEntryStore,
	log *slog.Logger,
) (TaskService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if projects == nil {
		return nil, domain.NewValidationError("projects", "cannot be nil", domain.ErrValidation)
	}
	if timeEntries == nil {
		return nil, domain.NewValidationError("timeEntries", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &taskServiceImpl{
		db:          db,
		tasks:       tasks,
		projects:    projects,
		timeEntries: timeEntries,
		logger:      log.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(ctx context.Context, cmd CreateTaskCommand) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	priority, err := domain.ParseTaskPriority(cmd.Priority)
	if err != nil {
		return nil, err
	}

	if _, err := s.projects.GetByID(ctx, cmd.ProjectID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("task", "create", "referenced project does not exist", store.ErrProjectNotFound)
		}
		return nil, NewServiceError("task", "create", "failed to load project", err)
	}

	task, err := domain.NewTask(cmd.Title, cmd.ProjectID, priority, cmd.EstimatedHours, cmd.StoryPoints)
	if err != nil {
		return nil, err
	}

	task.Description = cmd.Description
	task.Tags = cmd.Tags
	if cmd.SprintID != nil {
		task.AssignToSprint(*cmd.SprintID)
	}
	if cmd.AssigneeID != nil {
		task.Assign(*cmd.AssigneeID)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("project_id", cmd.ProjectID.String()))
		return nil, NewServiceError("task", "create", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("project_id", task.ProjectID.String()))
	return task, nil
}

// GetTask implements TaskService.GetTask.
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("task", "get", "task not found", store.ErrTaskNotFound)
		}
		return nil, NewServiceError("task", "get", "failed to load task", err)
	}
	return task, nil
}

// ListProjectTasks implements TaskService.ListProjectTasks.
func (s *taskServiceImpl) ListProjectTasks(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, NewServiceError("task", "list", "failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateStatus implements TaskService.UpdateStatus.
func (s *taskServiceImpl) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
) (*domain.Task, error) {
	parsed, err := domain.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := task.SetStatus(parsed); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, NewServiceError("task", "update_status", "failed to update task", err)
	}

	return task, nil
}

// AddDependency implements TaskService.AddDependency.
func (s *taskServiceImpl) AddDependency(
	ctx context.Context,
	taskID, dependsOn uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetTask(ctx, dependsOn); err != nil {
		return nil, err
	}

	// The cycle check walks the dependency edges of every task in the
	// project, so a chain through intermediate tasks is caught, not just a
	// direct back edge.
	siblings, err := s.tasks.ListByProject(ctx, task.ProjectID)
	if err != nil {
		return nil, NewServiceError("task", "add_dependency", "failed to list tasks", err)
	}

	edges := make(map[uuid.UUID][]uuid.UUID, len(siblings))
	for _, sibling := range siblings {
		edges[sibling.ID] = sibling.Dependencies
	}

	if domain.WouldCreateDependencyCycle(taskID, dependsOn, edges) {
		return nil, domain.ErrTaskDependencyCycle
	}

	if err := task.AddDependency(dependsOn); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, NewServiceError("task", "add_dependency", "failed to update task", err)
	}

	log.Info("task dependency added",
		slog.String("task_id", taskID.String()),
		slog.String("depends_on", dependsOn.String()))
	return task, nil
}

// AddSubtask implements TaskService.AddSubtask.
func (s *taskServiceImpl) AddSubtask(
	ctx context.Context,
	taskID, subtaskID uuid.UUID,
) (*domain.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetTask(ctx, subtaskID); err != nil {
		return nil, err
	}

	if err := task.AddSubtask(subtaskID); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, NewServiceError("task", "add_subtask", "failed to update task", err)
	}

	return task, nil
}

// AssignToSprint implements TaskService.AssignToSprint.
func (s *taskServiceImpl) AssignToSprint(
	ctx context.Context,
	taskID, sprintID uuid.UUID,
) (*domain.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.AssignToSprint(sprintID)

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, NewServiceError("task", "assign_to_sprint", "failed to update task", err)
	}

	return task, nil
}

// LogTime implements TaskService.LogTime.
func (s *taskServiceImpl) LogTime(ctx context.Context, cmd LogTimeCommand) (*domain.TimeEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := domain.NewTimeEntry(cmd.TaskID, cmd.UserID, cmd.Hours, cmd.Date, cmd.Description)
	if err != nil {
		return nil, err
	}

	// The entry insert and the actual-hours refresh land atomically; the
	// task's total is always the sum over surviving entries.
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		entryStore := s.timeEntries.WithTx(tx)
		taskStore := s.tasks.WithTx(tx)

		task, err := taskStore.GetByID(ctx, cmd.TaskID)
		if err != nil {
			return NewServiceError("task", "log_time", "failed to load task", err)
		}

		if err := entryStore.Create(ctx, entry); err != nil {
			return NewServiceError("task", "log_time", "failed to save time entry", err)
		}

		total, err := entryStore.SumHoursByTask(ctx, cmd.TaskID)
		if err != nil {
			return NewServiceError("task", "log_time", "failed to sum task hours", err)
		}

		if err := task.SetActualHours(total); err != nil {
			return err
		}

		if err := taskStore.Update(ctx, task); err != nil {
			return NewServiceError("task", "log_time", "failed to update task hours", err)
		}

		return nil
	})
	if err != nil {
		log.Error("failed to log time",
			slog.String("error", err.Error()),
			slog.String("task_id", cmd.TaskID.String()))
		return nil, err
	}

	log.Info("time logged",
		slog.String("entry_id", entry.ID.String()),
		slog.String("task_id", cmd.TaskID.String()),
		slog.Float64("hours", cmd.Hours))
	return entry, nil
}

// DeleteTimeEntry implements TaskService.DeleteTimeEntry.
func (s *taskServiceImpl) DeleteTimeEntry(ctx context.Context, entryID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := s.timeEntries.GetByID(ctx, entryID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return NewServiceError("task", "delete_time_entry", "time entry not found", store.ErrTimeEntryNotFound)
		}
		return NewServiceError("task", "delete_time_entry", "failed to load time entry", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		entryStore := s.timeEntries.WithTx(tx)
		taskStore := s.tasks.WithTx(tx)

		if err := entryStore.Delete(ctx, entryID); err != nil {
			return NewServiceError("task", "delete_time_entry", "failed to delete time entry", err)
		}

		task, err := taskStore.GetByID(ctx, entry.TaskID)
		if err != nil {
			return NewServiceError("task", "delete_time_entry", "failed to load task", err)
		}

		total, err := entryStore.SumHoursByTask(ctx, entry.TaskID)
		if err != nil {
			return NewServiceError("task", "delete_time_entry", "failed to sum task hours", err)
		}

		if err := task.SetActualHours(total); err != nil {
			return err
		}

		if err := taskStore.Update(ctx, task); err != nil {
			return NewServiceError("task", "delete_time_entry", "failed to update task hours", err)
		}

		return nil
	})
	if err != nil {
		log.Error("failed to delete time entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entryID.String()))
		return err
	}

	log.Info("time entry soft-deleted", slog.String("entry_id", entryID.String()))
	return nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return NewServiceError("task", "delete", "task not found", store.ErrTaskNotFound)
		}
		return NewServiceError("task", "delete", "failed to delete task", err)
	}

	log.Info("task soft-deleted", slog.String("task_id", id.String()))
	return nil
}
