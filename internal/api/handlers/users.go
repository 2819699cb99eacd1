package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/userdata/internal/domain/user"
	"github.com/pratik-mahalle/userdata/internal/pkg/errors"
	"github.com/pratik-mahalle/userdata/internal/pkg/logger"
	"github.com/pratik-mahalle/userdata/internal/pkg/utils"
)

// UserStore is the read side the users endpoints serve from
type UserStore interface {
	user.Source
	GetByID(ctx context.Context, id int64) (*user.Record, error)
	Count() int
}

// UserHandler serves the users collection
type UserHandler struct {
	store  UserStore
	logger *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(store UserStore, log *logger.Logger) *UserHandler {
	return &UserHandler{
		store:  store,
		logger: log,
	}
}

// List returns every user as a bare JSON array
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list users")
		utils.WriteError(w, errors.Internal("Failed to list users", err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, users)
}

// Get returns a single user by numeric ID
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid user ID"))
		return
	}

	u, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			utils.WriteError(w, appErr)
			return
		}
		h.logger.ErrorWithErr(err, "Failed to get user")
		utils.WriteError(w, errors.Internal("Failed to get user", err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, u)
}
