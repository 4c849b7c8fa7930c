package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/review-board/internal/auth"
	"github.com/sakif/review-board/internal/model"
	"github.com/sakif/review-board/internal/service"
)

// UserHandler serves /users: registration, login, logout and user maintenance.
type UserHandler struct {
	users         *service.UserService
	secureCookies bool
	logger        *slog.Logger
}

// NewUserHandler creates a UserHandler. secureCookies marks the session cookie Secure.
func NewUserHandler(users *service.UserService, secureCookies bool, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:         users,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Routes mounts the user endpoints on r.
func (h *UserHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/register", h.HandleRegister)
	r.Put("/", h.HandleUpdate)
	r.Post("/authenticate", h.HandleAuthenticate)
	r.Get("/{id}", h.HandleGetByID)
	r.Delete("/", h.HandleDelete)
	r.Post("/logout", h.HandleLogout)
}

func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in model.NewUser
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), in)
	if err != nil {
		fail(h.logger, w, "register", err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// HandleAuthenticate checks credentials, sets the session cookie and returns
// the user. The token itself only travels in the HttpOnly cookie.
func (h *UserHandler) HandleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.users.Authenticate(r.Context(), creds)
	if err != nil {
		if isClientError(err) {
			h.logger.Warn("login rejected", slog.String("userName", creds.UserName))
		}
		fail(h.logger, w, "authenticate", err)
		return
	}

	if err := auth.SetSessionCookie(w, auth.Session{Token: res.Token, UserID: res.User.ID}, h.secureCookies); err != nil {
		fail(h.logger, w, "authenticate", err)
		return
	}
	writeJSON(w, http.StatusOK, res.User)
}

// HandleLogout clears the session cookie. Issued tokens stay valid until
// they expire; there is no server-side revocation.
func (h *UserHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		fail(h.logger, w, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(h.logger, w, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		idRequest
		model.UserPatch
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Update(r.Context(), in.ID, in.UserPatch)
	if err != nil {
		fail(h.logger, w, "update user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var in idRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.users.Delete(r.Context(), callerID(r), in.ID)
	if err != nil {
		fail(h.logger, w, "delete user", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
