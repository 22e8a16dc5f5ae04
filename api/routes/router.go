package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentkart/rentkart-backend/api/controllers"
	"github.com/rentkart/rentkart-backend/api/middleware"
	"github.com/rentkart/rentkart-backend/internal/auth"
	"github.com/rentkart/rentkart-backend/internal/cart"
	"github.com/rentkart/rentkart-backend/internal/customers"
	"github.com/rentkart/rentkart-backend/internal/invoices"
	"github.com/rentkart/rentkart-backend/internal/orders"
	"github.com/rentkart/rentkart-backend/internal/products"
	"github.com/rentkart/rentkart-backend/pkg/auth/session"
	"github.com/rentkart/rentkart-backend/pkg/config"
	"github.com/rentkart/rentkart-backend/pkg/db"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	authService auth.Service,
	customersService customers.Service,
	productsService products.Service,
	cartService cart.Service,
	ordersService orders.Service,
	invoicesService invoices.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(authService, logg))
		r.Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, cfg.JWT, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.CatalogList(productsService, logg))
		r.Get("/{productId}", controllers.CatalogDetail(productsService, logg))
	})

	// Quotation emails link here, so confirmation stays reachable without a
	// session. The dashboard confirm button posts to the same route.
	r.With(middleware.Idempotency(redisClient, logg)).
		Post("/api/v1/orders/{orderId}/confirm", controllers.PortalConfirmOrder(ordersService, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/", controllers.CartAddItem(cartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartService, logg))
			r.Post("/checkout", controllers.CartCheckout(cartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.CustomerOrdersList(ordersService, logg))
			r.Get("/{orderId}", controllers.CustomerOrderDetail(ordersService, logg))
		})

		r.Get("/profile", controllers.ProfileFetch(customersService, logg))
		r.Put("/profile", controllers.ProfileUpdate(customersService, logg))

		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.RequireRole("vendor", logg))
			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.VendorListProducts(productsService, logg))
				r.Post("/", controllers.VendorCreateProduct(productsService, logg))
				r.Patch("/{productId}", controllers.VendorUpdateProduct(productsService, logg))
				r.Delete("/{productId}", controllers.VendorDelistProduct(productsService, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrdersList(ordersService, logg))
				r.Post("/", controllers.AdminCreateOrder(ordersService, logg))
				r.Get("/{orderId}", controllers.AdminOrderDetail(ordersService, logg))
				r.Put("/{orderId}", controllers.AdminSaveOrder(ordersService, logg))
				r.Post("/{orderId}/send-quotation", controllers.AdminSendQuotation(ordersService, logg))
				r.Post("/{orderId}/confirm", controllers.AdminConfirmOrder(ordersService, logg))
				r.Post("/{orderId}/cancel", controllers.AdminCancelOrder(ordersService, logg))
				r.Post("/{orderId}/invoice", controllers.AdminCreateInvoice(invoicesService, logg))
			})
			r.Route("/invoices", func(r chi.Router) {
				r.Get("/{invoiceId}", controllers.AdminInvoiceDetail(invoicesService, logg))
				r.Post("/{invoiceId}/post", controllers.AdminPostInvoice(invoicesService, logg))
			})
		})
	})

	return r
}
