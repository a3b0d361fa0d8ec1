package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/admin"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	Admin *admin.Admin `json:"admin"`
}

type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

type UpdateAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

type AdminHandler struct {
	service  admin.Service
	validate *validator.Validate
}

func NewAdminHandler(service admin.Service) *AdminHandler {
	return &AdminHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *AdminHandler) RegisterPublicRoutes(router chi.Router) {
	router.Post("/admin/login", h.handleLogin)
}

func (h *AdminHandler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/admins", h.handleListAdmins)
	router.Post("/admins", h.handleCreateAdmin)
	router.Put("/admins/{id}", h.handleUpdateAdmin)
	router.Delete("/admins/{id}", h.handleDeleteAdmin)
}

func (h *AdminHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, h.validate, &req) {
		return
	}

	token, a, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Failed to authenticate"
		if errors.Is(err, admin.ErrInvalidCredentials) {
			clientMessage = "Invalid email or password"
		} else {
			log.Error().Err(err).Msg("Failed to authenticate admin via service")
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{Token: token, Admin: a})
}

func (h *AdminHandler) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list admins via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to list admins")
		return
	}
	respondWithJSON(w, http.StatusOK, admins)
}

func (h *AdminHandler) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminRequest
	if !decodeBody(w, r, h.validate, &req) {
		return
	}

	created, err := h.service.Create(r.Context(), &admin.Admin{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}, req.Password)
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Failed to create admin"
		if errors.Is(err, admin.ErrEmailExists) {
			clientMessage = "Email is already taken"
		} else {
			log.Error().Err(err).Msg("Failed to create admin via service")
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) handleUpdateAdmin(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	adminID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var req UpdateAdminRequest
	if !decodeBody(w, r, h.validate, &req) {
		return
	}

	updated, err := h.service.Update(r.Context(), &admin.Admin{
		ID:    adminID,
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}, req.Password)
	if err != nil {
		statusCode := mapErrorToStatusCode(err)

		var clientMessage string
		switch {
		case errors.Is(err, admin.ErrNotFound):
			clientMessage = "Admin not found"
		case errors.Is(err, admin.ErrEmailExists):
			clientMessage = "Email is already taken"
		default:
			log.Error().Err(err).Msg("Failed to update admin via service")
			clientMessage = "Failed to update admin"
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) handleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	adminID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	if err := h.service.Delete(r.Context(), adminID); err != nil {
		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Failed to delete admin"
		if errors.Is(err, admin.ErrNotFound) {
			clientMessage = "Admin not found"
		} else {
			log.Error().Err(err).Msg("Failed to delete admin via service")
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Admin deleted"})
}
