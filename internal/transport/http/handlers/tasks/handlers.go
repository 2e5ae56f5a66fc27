package taskshandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskdesk/internal/domain/task"
	"taskdesk/internal/transport/http/api"
	"taskdesk/internal/transport/http/middleware"
	"taskdesk/internal/transport/http/shared"
)

type Handler struct {
	Service *task.Service
}

func NewHandler(service *task.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{taskID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Patch("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload task.CreateInput
	if !shared.ReadPayload(w, r, reqID, &payload) {
		return
	}
	created, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, created)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page, err := shared.ParsePagination(r)
	if shared.RejectInvalid(w, reqID, err) {
		return
	}
	tasks, err := h.Service.List(r.Context(), page.Offset, page.Limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	total, err := h.Service.Count(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.SetTotal(w, total)
	api.Success(w, tasks)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r, "taskID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	t, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, t)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := shared.ParseID(r, "taskID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var payload task.UpdateInput
	if !shared.ReadPayload(w, r, reqID, &payload) {
		return
	}
	updated, err := h.Service.Update(r.Context(), id, payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r, "taskID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	api.NoContent(w)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	if shared.RejectInvalid(w, reqID, err) {
		return
	}
	switch {
	case errors.Is(err, task.ErrAssigneeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "Employee not found", reqID)
	case errors.Is(err, task.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "Task not found", reqID)
	default:
		slog.Error("task request failed", "err", err, "method", r.Method, "path", r.URL.Path, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
	}
}
