package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/order"
)

type CreateOrderRequest struct {
	UserID          string                   `json:"user_id" validate:"required,uuid4"`
	Items           []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryType    string                   `json:"delivery_type" validate:"required,oneof=DELIVERY PICKUP"`
	PaymentMethod   string                   `json:"payment_method" validate:"required,oneof=CASH CREDIT_CARD DEBIT_CARD PIX"`
	DeliveryAddress string                   `json:"delivery_address,omitempty"`
	CustomerPhone   string                   `json:"customer_phone" validate:"required"`
	Notes           string                   `json:"notes,omitempty"`
	DiscountAmount  float64                  `json:"discount_amount,omitempty" validate:"gte=0"`
}

type CreateOrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	// UnitPrice is accepted on the wire and ignored; prices are re-derived
	// from the catalog at creation time.
	UnitPrice float64 `json:"unit_price,omitempty" validate:"gte=0"`
	Notes     string  `json:"notes,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderHandler struct {
	service  order.Service
	validate *validator.Validate
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Post("/orders", h.handleCreateOrder)
	router.Get("/orders", h.handleListOrders)
	router.Get("/orders/{id}", h.handleGetOrder)
}

func (h *OrderHandler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/orders", h.handleListOrders)
	router.Put("/orders/{orderId}/status", h.handleUpdateStatus)
}

func (h *OrderHandler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !decodeBody(w, r, h.validate, &req) {
		return
	}

	userID, err := uuid.FromString(req.UserID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user_id")
		return
	}

	items := make([]order.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.FromString(item.ProductID)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid product_id in items")
			return
		}
		items = append(items, order.CreateOrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}

	created, err := h.service.CreateOrder(r.Context(), order.CreateOrderInput{
		UserID:          userID,
		Items:           items,
		DeliveryType:    order.DeliveryType(req.DeliveryType),
		PaymentMethod:   order.PaymentMethod(req.PaymentMethod),
		DeliveryAddress: req.DeliveryAddress,
		CustomerPhone:   req.CustomerPhone,
		Notes:           req.Notes,
		DiscountAmount:  req.DiscountAmount,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create order via service")

		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Failed to create order"
		if statusCode != http.StatusInternalServerError {
			clientMessage = err.Error()
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	var orders []order.Order
	var err error

	if userParam := r.URL.Query().Get("user_id"); userParam != "" {
		userID, parseErr := uuid.FromString(userParam)
		if parseErr != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid user_id parameter")
			return
		}
		orders, err = h.service.ListOrdersByUser(r.Context(), userID)
	} else {
		orders, err = h.service.ListOrders(r.Context())
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	orderID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	o, err := h.service.GetOrderByID(r.Context(), orderID)
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Failed to get order"
		if errors.Is(err, order.ErrOrderNotFound) {
			clientMessage = "Order not found"
		} else {
			log.Error().Err(err).Msg("Failed to get order via service")
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "orderId")
	orderID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid orderId parameter")
		return
	}

	var req UpdateOrderStatusRequest
	if !decodeBody(w, r, h.validate, &req) {
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), orderID, order.OrderStatus(req.Status))
	if err != nil {
		statusCode := mapErrorToStatusCode(err)

		var clientMessage string
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			clientMessage = "Order not found"
		case errors.Is(err, order.ErrInvalidStatusTransition):
			clientMessage = err.Error()
		default:
			log.Error().Err(err).Msg("Failed to update order status via service")
			clientMessage = "Failed to update order status"
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"order":   updated,
		"message": "Status atualizado com sucesso",
	})
}
