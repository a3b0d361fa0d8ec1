package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/catalog"
)

type ProductRequest struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Image           string  `json:"image,omitempty"`
	CategoryID      string  `json:"category_id" validate:"required,uuid4"`
	PreparationTime int     `json:"preparation_time,omitempty" validate:"gte=0"`
	Ingredients     string  `json:"ingredients,omitempty"`
	Available       *bool   `json:"available,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

type CatalogHandler struct {
	service  catalog.Service
	validate *validator.Validate
}

func NewCatalogHandler(service catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *CatalogHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListAvailableProducts)
	router.Get("/products/{id}", h.handleGetProduct)
	router.Get("/categories", h.handleListCategories)
}

func (h *CatalogHandler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/products", h.handleListAllProducts)
	router.Get("/products/{id}", h.handleGetProduct)
	router.Post("/products", h.handleCreateProduct)
	router.Put("/products/{id}", h.handleUpdateProduct)
	router.Delete("/products/{id}", h.handleDeleteProduct)
	router.Post("/categories", h.handleCreateCategory)
}

func (h *CatalogHandler) handleListAvailableProducts(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r, true)
}

func (h *CatalogHandler) handleListAllProducts(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r, false)
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request, availableOnly bool) {
	products, err := h.service.ListProducts(r.Context(), availableOnly)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	productID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Failed to get product"
		if errors.Is(err, catalog.ErrProductNotFound) {
			clientMessage = "Product not found"
		} else {
			log.Error().Err(err).Msg("Failed to get product via service")
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) productFromRequest(req ProductRequest) (*catalog.Product, error) {
	categoryID, err := uuid.FromString(req.CategoryID)
	if err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	return &catalog.Product{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Image:           req.Image,
		CategoryID:      categoryID,
		PreparationTime: req.PreparationTime,
		Ingredients:     req.Ingredients,
		Available:       available,
	}, nil
}

func (h *CatalogHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeBody(w, r, h.validate, &req) {
		return
	}

	product, err := h.productFromRequest(req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category_id")
		return
	}

	created, err := h.service.CreateProduct(r.Context(), product)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create product via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to create product")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	productID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var req ProductRequest
	if !decodeBody(w, r, h.validate, &req) {
		return
	}

	product, err := h.productFromRequest(req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category_id")
		return
	}
	product.ID = productID

	updated, err := h.service.UpdateProduct(r.Context(), product)
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Failed to update product"
		if errors.Is(err, catalog.ErrProductNotFound) {
			clientMessage = "Product not found"
		} else {
			log.Error().Err(err).Msg("Failed to update product via service")
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	productID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Failed to delete product"
		if errors.Is(err, catalog.ErrProductNotFound) {
			clientMessage = "Product not found"
		} else {
			log.Error().Err(err).Msg("Failed to delete product via service")
		}
		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (h *CatalogHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeBody(w, r, h.validate, &req) {
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	created, err := h.service.CreateCategory(r.Context(), &catalog.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      active,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create category via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to create category")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}
