package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/repository"
)

type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100,excludesall=\x00\n\r\t"`
}

// HandleRegisterUser creates a new account. Registration is idempotent on
// username: an existing account is returned unchanged.
func HandleRegisterUser(userRepo repository.User) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		if existing, err := userRepo.GetUserByUsername(r.Context(), req.Username); err == nil {
			respondJSON(w, http.StatusOK, DataResponse{Data: existing})
			return
		}

		user, err := userRepo.CreateUser(r.Context(), req.Username)
		if err != nil {
			respondServiceError(w, r, "Register user", err)
			return
		}

		log.Info("User registered", "user_id", user.ID, "username", user.Username)

		respondJSON(w, http.StatusCreated, DataResponse{Data: user})
	}
}

// HandleGetUser returns an account by ID
func HandleGetUser(userRepo repository.User) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		user, err := userRepo.GetUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get user", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: user})
	}
}
