package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/account-api/internal/api/shared"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/platform/logger"
	"github.com/phrazzld/account-api/internal/store"
)

// UserHandler serves the /users endpoints.
type UserHandler struct {
	users store.UserStore
}

// NewUserHandler creates a UserHandler backed by users.
func NewUserHandler(users store.UserStore) *UserHandler {
	if users == nil {
		panic("users cannot be nil")
	}
	return &UserHandler{users: users}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) error {
	in, ok := decodeUserInput(w, r)
	if !ok {
		return nil
	}
	if result := domain.ValidateCreate(in); !result.OK() {
		logger.FromContext(r.Context()).Debug("create payload rejected",
			slog.String("message", result.Message))
		shared.RespondWithValidation(w, r, result)
		return nil
	}

	user, err := h.users.Create(r.Context(), in)
	if err != nil {
		return err
	}
	shared.RespondWithData(w, r, user)
	return nil
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathUserID(w, r)
	if !ok {
		return nil
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		return err
	}
	shared.RespondWithData(w, r, user)
	return nil
}

// List handles GET /users. The optional name and email query parameters
// narrow the result; no match yields an empty list.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	filter := domain.UserFilter{
		Name:  q.Get("name"),
		Email: q.Get("email"),
	}

	users, err := h.users.GetMany(r.Context(), filter)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	shared.RespondWithData(w, r, users)
	return nil
}

// Update handles PUT /users/{id}. Absent and empty fields are left as they
// are; an id in the body is ignored.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathUserID(w, r)
	if !ok {
		return nil
	}
	in, ok := decodeUserInput(w, r)
	if !ok {
		return nil
	}
	if result := domain.ValidateUpdate(in); !result.OK() {
		logger.FromContext(r.Context()).Debug("update payload rejected",
			slog.String("message", result.Message))
		shared.RespondWithValidation(w, r, result)
		return nil
	}

	user, err := h.users.Update(r.Context(), id, domain.NewUserPatch(in))
	if err != nil {
		return err
	}
	shared.RespondWithData(w, r, user)
	return nil
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathUserID(w, r)
	if !ok {
		return nil
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		return err
	}
	shared.RespondWithData(w, r, nil)
	return nil
}
