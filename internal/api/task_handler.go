package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/api/middleware"
	"github.com/pvaldez/cadence-api/internal/api/shared"
	"github.com/pvaldez/cadence-api/internal/service"
)

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title          string     `json:"title"       validate:"required,min=1"`
	Description    string     `json:"description"`
	ProjectID      uuid.UUID  `json:"project_id"  validate:"required"`
	SprintID       *uuid.UUID `json:"sprint_id,omitempty"`
	AssigneeID     *uuid.UUID `json:"assignee_id,omitempty"`
	Priority       string     `json:"priority"    validate:"required,oneof=low medium high urgent"`
	EstimatedHours float64    `json:"estimated_hours" validate:"gte=0"`
	StoryPoints    int        `json:"story_points"    validate:"gte=0"`
	Tags           []string   `json:"tags,omitempty"`
}

// UpdateTaskStatusRequest represents the request body for a status change.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AddDependencyRequest represents the request body for adding a dependency.
type AddDependencyRequest struct {
	DependsOn uuid.UUID `json:"depends_on" validate:"required"`
}

// AddSubtaskRequest represents the request body for adding a subtask.
type AddSubtaskRequest struct {
	SubtaskID uuid.UUID `json:"subtask_id" validate:"required"`
}

// AssignSprintRequest represents the request body for sprint assignment.
type AssignSprintRequest struct {
	SprintID uuid.UUID `json:"sprint_id" validate:"required"`
}

// LogTimeRequest represents the request body for logging time against a task.
type LogTimeRequest struct {
	Hours       float64   `json:"hours" validate:"required,gt=0"`
	Date        time.Time `json:"date"  validate:"required"`
	Description string    `json:"description"`
}

// TaskHandler handles task and time tracking HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), service.CreateTaskCommand{
		Title:          req.Title,
		Description:    req.Description,
		ProjectID:      req.ProjectID,
		SprintID:       req.SprintID,
		AssigneeID:     req.AssigneeID,
		Priority:       req.Priority,
		EstimatedHours: req.EstimatedHours,
		StoryPoints:    req.StoryPoints,
		Tags:           req.Tags,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// GetTask handles GET /api/tasks/{taskID} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := urlParamUUID(r, "taskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ListProjectTasks handles GET /api/projects/{projectID}/tasks requests.
func (h *TaskHandler) ListProjectTasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamUUID(r, "projectID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	tasks, err := h.taskService.ListProjectTasks(r.Context(), projectID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// UpdateStatus handles PUT /api/tasks/{taskID}/status requests.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	taskID, err := urlParamUUID(r, "taskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req UpdateTaskStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.UpdateStatus(r.Context(), taskID, req.Status)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// AddDependency handles POST /api/tasks/{taskID}/dependencies requests.
func (h *TaskHandler) AddDependency(w http.ResponseWriter, r *http.Request) {
	taskID, err := urlParamUUID(r, "taskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req AddDependencyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.AddDependency(r.Context(), taskID, req.DependsOn)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// AddSubtask handles POST /api/tasks/{taskID}/subtasks requests.
func (h *TaskHandler) AddSubtask(w http.ResponseWriter, r *http.Request) {
	taskID, err := urlParamUUID(r, "taskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req AddSubtaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.AddSubtask(r.Context(), taskID, req.SubtaskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// AssignToSprint handles PUT /api/tasks/{taskID}/sprint requests.
func (h *TaskHandler) AssignToSprint(w http.ResponseWriter, r *http.Request) {
	taskID, err := urlParamUUID(r, "taskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req AssignSprintRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.AssignToSprint(r.Context(), taskID, req.SprintID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// LogTime handles POST /api/tasks/{taskID}/time requests. The authenticated
// user is recorded as the entry's owner.
func (h *TaskHandler) LogTime(w http.ResponseWriter, r *http.Request) {
	taskID, err := urlParamUUID(r, "taskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req LogTimeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	entry, err := h.taskService.LogTime(r.Context(), service.LogTimeCommand{
		TaskID:      taskID,
		UserID:      userID,
		Hours:       req.Hours,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, entry)
}

// DeleteTimeEntry handles DELETE /api/time-entries/{entryID} requests.
func (h *TaskHandler) DeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := urlParamUUID(r, "entryID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid time entry ID")
		return
	}

	if err := h.taskService.DeleteTimeEntry(r.Context(), entryID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteTask handles DELETE /api/tasks/{taskID} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := urlParamUUID(r, "taskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
