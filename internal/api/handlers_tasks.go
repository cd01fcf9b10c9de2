package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/giselleandrade1/lembrafacil/internal/app"
	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/usecase"
)

type taskHandler struct {
	c *app.Container
}

type createTaskRequest struct {
	DueAt            time.Time `json:"dueAt"`
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Mood             string    `json:"mood"`
	Device           string    `json:"device"`
	Tags             []string  `json:"tags"`
	Dependencies     []string  `json:"dependencies"`
	Energy           int       `json:"energy"`
	Urgency          int       `json:"urgency"`
	Importance       int       `json:"importance"`
	EffortScore      int       `json:"effortScore"`
	EstimatedMinutes int       `json:"estimatedMinutes"`
}

type updateStatusRequest struct {
	Progress *int          `json:"progress"`
	Status   domain.Status `json:"status"`
}

// List handles GET /api/tasks
func (h *taskHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.c.ListTasksUseCase().Execute(r.Context(), usecase.ListTasksInput{
		Status: domain.Status(r.URL.Query().Get("status")),
		Query:  r.URL.Query().Get("q"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Tasks)
}

// Create handles POST /api/tasks
func (h *taskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.c.CreateTaskUseCase().Execute(r.Context(), usecase.CreateTaskInput{
		DueAt:            req.DueAt,
		ID:               req.ID,
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Mood:             req.Mood,
		Device:           req.Device,
		Tags:             req.Tags,
		Dependencies:     req.Dependencies,
		Energy:           req.Energy,
		Urgency:          req.Urgency,
		Importance:       req.Importance,
		EffortScore:      req.EffortScore,
		EstimatedMinutes: req.EstimatedMinutes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !h.persisted(w) {
		return
	}
	w.Header().Set("Location", "/api/tasks/"+out.Task.ID)
	writeJSON(w, http.StatusCreated, out.Task)
}

// Get handles GET /api/tasks/{id}
func (h *taskHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.c.ShowTaskUseCase().Execute(r.Context(), usecase.ShowTaskInput{ID: chi.URLParam(r, "id")})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if out.Cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeJSON(w, http.StatusOK, out.Task)
}

// UpdateStatus handles PATCH /api/tasks/{id}/status
func (h *taskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.c.UpdateStatusUseCase().Execute(r.Context(), usecase.UpdateStatusInput{
		ID:       chi.URLParam(r, "id"),
		Status:   req.Status,
		Progress: req.Progress,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !h.persisted(w) {
		return
	}
	writeJSON(w, http.StatusOK, out.After)
}

// History handles GET /api/tasks/{id}/history
func (h *taskHandler) History(w http.ResponseWriter, r *http.Request) {
	out, err := h.c.TaskHistoryUseCase().Execute(r.Context(), usecase.TaskHistoryInput{ID: chi.URLParam(r, "id")})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Versions)
}

// persisted writes a 500 and returns false when the last write never reached the event log.
func (h *taskHandler) persisted(w http.ResponseWriter) bool {
	if err := h.c.PersistErr(); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("event log out of date: %v", err))
		return false
	}
	return true
}
