package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/notify"
	"github.com/aeropizza/backend/internal/order"
	"github.com/aeropizza/backend/internal/user"
)

type WhatsAppLinkResponse struct {
	Message string `json:"message,omitempty"`
	Link    string `json:"link"`
}

// NotifyHandler serves the WhatsApp handoff for a created order: the
// composed summary plus the wa.me deep link the storefront opens.
type NotifyHandler struct {
	orders   order.Service
	users    user.Service
	composer *notify.Composer
	phone    string
}

func NewNotifyHandler(orders order.Service, users user.Service, composer *notify.Composer, phone string) *NotifyHandler {
	return &NotifyHandler{
		orders:   orders,
		users:    users,
		composer: composer,
		phone:    phone,
	}
}

func (h *NotifyHandler) RegisterRoutes(router chi.Router) {
	router.Get("/orders/{id}/whatsapp", h.handleWhatsAppLink)
}

func (h *NotifyHandler) handleWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	orderID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	o, err := h.orders.GetOrderByID(r.Context(), orderID)
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Failed to get order"
		if errors.Is(err, order.ErrOrderNotFound) {
			clientMessage = "Order not found"
		} else {
			log.Error().Err(err).Msg("Failed to get order for whatsapp link")
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	customer := notify.Customer{Phone: o.CustomerPhone}
	if u, err := h.users.GetByID(r.Context(), o.UserID); err == nil {
		customer.Name = u.Name
		customer.Email = u.Email
	} else {
		log.Warn().Err(err).Stringer("user_id", o.UserID).Msg("Composing whatsapp message without customer record")
	}

	message, err := h.composer.Compose(r.Context(), o, customer)
	if err != nil {
		// The order exists; hand back a bare link rather than failing.
		log.Error().Err(err).Stringer("order_id", orderID).Msg("Failed to compose whatsapp message, returning fallback link")
		respondWithJSON(w, http.StatusOK, WhatsAppLinkResponse{Link: notify.FallbackLink(h.phone)})
		return
	}

	respondWithJSON(w, http.StatusOK, WhatsAppLinkResponse{
		Message: message,
		Link:    notify.DeepLink(h.phone, message),
	})
}
