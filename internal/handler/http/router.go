package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aeropizza/backend/internal/admin"
)

type Handlers struct {
	Orders  *OrderHandler
	Catalog *CatalogHandler
	Users   *UserHandler
	Admins  *AdminHandler
	Pix     *PixHandler
	Stats   *StatsHandler
	Notify  *NotifyHandler
}

// NewRouter assembles the storefront and admin route trees. Everything
// under /admin (except login) requires a Bearer session token.
func NewRouter(h Handlers, adminSvc admin.Service) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	h.Catalog.RegisterRoutes(router)
	h.Users.RegisterRoutes(router)
	h.Orders.RegisterRoutes(router)
	h.Notify.RegisterRoutes(router)
	h.Admins.RegisterPublicRoutes(router)

	router.Route("/admin", func(r chi.Router) {
		r.Use(AdminAuth(adminSvc))
		h.Orders.RegisterAdminRoutes(r)
		h.Catalog.RegisterAdminRoutes(r)
		h.Admins.RegisterAdminRoutes(r)
		h.Pix.RegisterAdminRoutes(r)
		h.Stats.RegisterAdminRoutes(r)
	})

	return router
}
