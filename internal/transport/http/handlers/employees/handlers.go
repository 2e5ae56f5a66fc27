package employeeshandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskdesk/internal/domain/employee"
	"taskdesk/internal/transport/http/api"
	"taskdesk/internal/transport/http/middleware"
	"taskdesk/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Patch("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload employee.CreateInput
	if !shared.ReadPayload(w, r, reqID, &payload) {
		return
	}
	emp, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, emp)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page, err := shared.ParsePagination(r)
	if shared.RejectInvalid(w, reqID, err) {
		return
	}
	employees, err := h.Service.List(r.Context(), page.Offset, page.Limit)
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
	api.Success(w, employees)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r, "employeeID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	emp, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, emp)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := shared.ParseID(r, "employeeID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var payload employee.UpdateInput
	if !shared.ReadPayload(w, r, reqID, &payload) {
		return
	}
	emp, err := h.Service.Update(r.Context(), id, payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, emp)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r, "employeeID")
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
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "Employee not found", reqID)
	case errors.Is(err, employee.ErrHasTasks):
		api.Fail(w, http.StatusConflict, "employee_has_tasks", "Employee still has assigned tasks", reqID)
	default:
		slog.Error("employee request failed", "err", err, "method", r.Method, "path", r.URL.Path, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
	}
}
