package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/review-board/internal/model"
	"github.com/sakif/review-board/internal/service"
)

// AssigneeHandler serves /assignees: reviewer assignment edges and their joined views.
type AssigneeHandler struct {
	assignees *service.AssigneeService
	logger    *slog.Logger
}

// NewAssigneeHandler creates an AssigneeHandler backed by the assignee service.
func NewAssigneeHandler(assignees *service.AssigneeService, logger *slog.Logger) *AssigneeHandler {
	return &AssigneeHandler{assignees: assignees, logger: logger}
}

// Routes mounts the assignee endpoints on r.
func (h *AssigneeHandler) Routes(r chi.Router) {
	r.Post("/", h.HandleList)
	r.Post("/create", h.HandleCreate)
	r.Post("/employees", h.HandleEmployees)
	r.Get("/{id}", h.HandleGetByID)
	r.Delete("/", h.HandleDelete)
}

// HandleList returns the assignees of the employee named in the body, each
// with the assignee's profile under "assigneeInfo".
func (h *AssigneeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var in struct {
		AssignedEmployeeID string `json:"assignedEmployeeId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	list, err := h.assignees.ListByEmployee(r.Context(), in.AssignedEmployeeID)
	if err != nil {
		fail(h.logger, w, "list assignees", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleEmployees returns the employees the assignee in the body may review,
// with their profiles merged in.
func (h *AssigneeHandler) HandleEmployees(w http.ResponseWriter, r *http.Request) {
	var in struct {
		AssigneeID string `json:"assigneeId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	list, err := h.assignees.EmployeesOf(r.Context(), in.AssigneeID)
	if err != nil {
		fail(h.logger, w, "list assigned employees", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AssigneeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.NewAssignee
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	a, err := h.assignees.Create(r.Context(), callerID(r), in)
	if err != nil {
		fail(h.logger, w, "create assignee", err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *AssigneeHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	a, err := h.assignees.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(h.logger, w, "get assignee", err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AssigneeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var in idRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.assignees.Delete(r.Context(), in.ID)
	if err != nil {
		fail(h.logger, w, "delete assignee", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
