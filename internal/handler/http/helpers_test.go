package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aeropizza/backend/internal/admin"
	"github.com/aeropizza/backend/internal/catalog"
	"github.com/aeropizza/backend/internal/order"
	"github.com/aeropizza/backend/internal/pix"
	"github.com/aeropizza/backend/internal/user"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"order_not_found", order.ErrOrderNotFound, http.StatusNotFound},
		{"product_not_found", catalog.ErrProductNotFound, http.StatusNotFound},
		{"pix_not_configured", pix.ErrNotConfigured, http.StatusNotFound},
		{"user_email_exists", user.ErrEmailExists, http.StatusBadRequest},
		{"admin_email_exists", admin.ErrEmailExists, http.StatusBadRequest},
		{"no_items", order.ErrNoItems, http.StatusBadRequest},
		{"unknown_product", order.ErrUnknownProduct, http.StatusBadRequest},
		{"invalid_transition", order.ErrInvalidStatusTransition, http.StatusBadRequest},
		{"invalid_credentials", admin.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid_token", admin.ErrInvalidToken, http.StatusUnauthorized},
		{"wrapped_sentinel", fmt.Errorf("service: %w", order.ErrOrderNotFound), http.StatusNotFound},
		{"unrecognized", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapErrorToStatusCode(tt.err))
		})
	}
}
