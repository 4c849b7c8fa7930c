package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/review-board/internal/model"
	"github.com/sakif/review-board/internal/service"
)

// FeedbackHandler serves /feedbacks.
type FeedbackHandler struct {
	feedback *service.FeedbackService
	logger   *slog.Logger
}

// NewFeedbackHandler creates a FeedbackHandler backed by the feedback service.
func NewFeedbackHandler(feedback *service.FeedbackService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, logger: logger}
}

// Routes mounts the feedback endpoints on r.
func (h *FeedbackHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/create", h.HandleCreate)
	r.Get("/{id}", h.HandleGetByID)
	r.Put("/", h.HandleUpdate)
	r.Delete("/", h.HandleDelete)
}

// HandleList reads reviewId from the body and falls back to the query
// string, since many clients drop GET bodies.
func (h *FeedbackHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ReviewID string `json:"reviewId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if in.ReviewID == "" {
		in.ReviewID = r.URL.Query().Get("reviewId")
	}

	list, err := h.feedback.ListByReview(r.Context(), in.ReviewID)
	if err != nil {
		fail(h.logger, w, "list feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *FeedbackHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.NewFeedback
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	f, err := h.feedback.Create(r.Context(), callerID(r), in)
	if err != nil {
		fail(h.logger, w, "create feedback", err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *FeedbackHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	f, err := h.feedback.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(h.logger, w, "get feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *FeedbackHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		idRequest
		model.FeedbackPatch
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	f, err := h.feedback.Update(r.Context(), in.ID, in.FeedbackPatch)
	if err != nil {
		fail(h.logger, w, "update feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *FeedbackHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var in idRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.feedback.Delete(r.Context(), in.ID)
	if err != nil {
		fail(h.logger, w, "delete feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
