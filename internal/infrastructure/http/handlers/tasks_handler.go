package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/BaAEz/taskapp-Immersiveai/internal/application/tasks"
	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
	domerrors "github.com/BaAEz/taskapp-Immersiveai/internal/domain/errors"
	"github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/http/middleware"
)

// TasksHandler serves the owner-scoped /tasks endpoints. Auth middleware
// guarantees a resolved user in the context before any of these run.
type TasksHandler struct {
	create *tasks.CreateTask
	list   *tasks.ListTasks
	update *tasks.UpdateTask
	remove *tasks.DeleteTask
	log    zerolog.Logger
}

func NewTasksHandler(create *tasks.CreateTask, list *tasks.ListTasks, update *tasks.UpdateTask, remove *tasks.DeleteTask, log zerolog.Logger) *TasksHandler {
	return &TasksHandler{
		create: create,
		list:   list,
		update: update,
		remove: remove,
		log:    log,
	}
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "Access denied. No token provided")
		return
	}
	list, err := h.list.Execute(r.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("list tasks failed")
		writeErr(w, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"tasks": taskListPayload(list),
	})
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "Access denied. No token provided")
		return
	}
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Task title is required")
		return
	}
	title := SanitizeTitle(body.Title)
	if title == "" {
		writeErr(w, http.StatusBadRequest, "Task title is required")
		return
	}
	task, err := h.create.Execute(r.Context(), tasks.CreateTaskInput{
		Owner: user.ID,
		Title: title,
	})
	if err != nil {
		if err == domerrors.ErrTitleRequired {
			writeErr(w, http.StatusBadRequest, "Task title is required")
			return
		}
		h.log.Error().Err(err).Msg("create task failed")
		writeErr(w, http.StatusInternalServerError, "Failed to add task")
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]interface{}{
		"task": taskPayload(task),
	})
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "Access denied. No token provided")
		return
	}
	taskID, ok := taskIDFromURL(r)
	if !ok {
		// An id that cannot exist is the same as one that does not.
		writeErr(w, http.StatusNotFound, "Task not found")
		return
	}
	var body struct {
		Title       *string `json:"title"`
		IsCompleted *bool   `json:"isCompleted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	task, err := h.update.Execute(r.Context(), tasks.UpdateTaskInput{
		Owner: user.ID,
		ID:    taskID,
		Patch: domain.TaskPatch{Title: body.Title, IsCompleted: body.IsCompleted},
	})
	if err != nil {
		switch err {
		case domerrors.ErrTaskNotFound:
			writeErr(w, http.StatusNotFound, "Task not found")
		case domerrors.ErrTitleRequired:
			writeErr(w, http.StatusBadRequest, "Task title is required")
		default:
			h.log.Error().Err(err).Msg("update task failed")
			writeErr(w, http.StatusInternalServerError, "Failed to update task")
		}
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"task": taskPayload(task),
	})
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "Access denied. No token provided")
		return
	}
	taskID, ok := taskIDFromURL(r)
	if !ok {
		writeErr(w, http.StatusNotFound, "Task not found")
		return
	}
	if err := h.remove.Execute(r.Context(), user.ID, taskID); err != nil {
		if err == domerrors.ErrTaskNotFound {
			writeErr(w, http.StatusNotFound, "Task not found")
			return
		}
		h.log.Error().Err(err).Msg("delete task failed")
		writeErr(w, http.StatusInternalServerError, "Failed to delete task")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "Task deleted successfully",
	})
}

func taskIDFromURL(r *http.Request) (domain.TaskID, bool) {
	id, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		return domain.TaskID{}, false
	}
	return id, true
}
