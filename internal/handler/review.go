package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/review-board/internal/model"
	"github.com/sakif/review-board/internal/service"
)

// ReviewHandler serves /reviews.
type ReviewHandler struct {
	reviews *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a ReviewHandler backed by the review service.
func NewReviewHandler(reviews *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// Routes mounts the review endpoints on r.
func (h *ReviewHandler) Routes(r chi.Router) {
	r.Post("/", h.HandleList)
	r.Post("/create", h.HandleCreate)
	r.Get("/{id}", h.HandleGetByID)
	r.Put("/", h.HandleUpdate)
	r.Delete("/", h.HandleDelete)
}

// HandleList is a POST because the employee filter travels in the body.
func (h *ReviewHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var in struct {
		EmployeeID string `json:"employeeId"`
		UpdatedBy  string `json:"updatedBy"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	views, err := h.reviews.List(r.Context(), model.ReviewFilter{EmployeeID: in.EmployeeID, UpdatedBy: in.UpdatedBy})
	if err != nil {
		fail(h.logger, w, "list reviews", err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.NewReview
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	review, err := h.reviews.Create(r.Context(), callerID(r), in)
	if err != nil {
		fail(h.logger, w, "create review", err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	review, err := h.reviews.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(h.logger, w, "get review", err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		idRequest
		model.ReviewPatch
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	review, err := h.reviews.Update(r.Context(), in.ID, in.ReviewPatch)
	if err != nil {
		fail(h.logger, w, "update review", err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// HandleDelete removes the review and the feedback attached to it.
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var in idRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.reviews.Delete(r.Context(), in.ID)
	if err != nil {
		fail(h.logger, w, "delete review", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
