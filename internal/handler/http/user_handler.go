package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/user"
)

type UpsertUserRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type UserHandler struct {
	service  user.Service
	validate *validator.Validate
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Post("/users", h.handleUpsertUser)
}

func (h *UserHandler) handleUpsertUser(w http.ResponseWriter, r *http.Request) {
	var req UpsertUserRequest
	if !decodeBody(w, r, h.validate, &req) {
		return
	}

	u, err := h.service.UpsertByEmail(r.Context(), &user.User{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Role:    user.RoleClient,
	})
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Failed to create or update user"
		if errors.Is(err, user.ErrEmailExists) {
			clientMessage = "Email already exists"
		} else {
			log.Error().Err(err).Msg("Failed to upsert user via service")
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, u)
}
