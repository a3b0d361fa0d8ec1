package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/pix"
)

type PixConfigRequest struct {
	PixKey    string `json:"pix_key" validate:"required"`
	PixType   string `json:"pix_type" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
	Active    *bool  `json:"active,omitempty"`
}

type PixHandler struct {
	service  pix.Service
	validate *validator.Validate
}

func NewPixHandler(service pix.Service) *PixHandler {
	return &PixHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *PixHandler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/pix", h.handleGetPix)
	router.Put("/pix", h.handleUpsertPix)
}

func (h *PixHandler) handleGetPix(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Get(r.Context())
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Failed to get PIX configuration"
		if errors.Is(err, pix.ErrNotConfigured) {
			clientMessage = "PIX configuration not found"
		} else {
			log.Error().Err(err).Msg("Failed to get pix config via service")
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}
	respondWithJSON(w, http.StatusOK, cfg)
}

func (h *PixHandler) handleUpsertPix(w http.ResponseWriter, r *http.Request) {
	var req PixConfigRequest
	if !decodeBody(w, r, h.validate, &req) {
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	updated, err := h.service.Upsert(r.Context(), &pix.Config{
		PixKey:    req.PixKey,
		PixType:   req.PixType,
		Recipient: req.Recipient,
		Active:    active,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to upsert pix config via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to update PIX configuration")
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}
