package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/savinduamalka/agni-storefront/internal/application/auth"
	"github.com/savinduamalka/agni-storefront/internal/application/cart"
	"github.com/savinduamalka/agni-storefront/internal/application/catalog"
	"github.com/savinduamalka/agni-storefront/internal/application/engagement"
	"github.com/savinduamalka/agni-storefront/internal/application/notify"
	"github.com/savinduamalka/agni-storefront/internal/application/session"
	"github.com/savinduamalka/agni-storefront/internal/application/wishlist"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session    *session.Session
	AuthUC     *auth.UseCase
	Cart       *cart.Proxy
	Wishlist   *wishlist.Proxy
	Catalog    *catalog.Service
	Engagement *engagement.Service
	Notices    *notify.Center
	Gatherer   prometheus.Gatherer // nil = sin /metrics
	AppName    string
}

// Router registra las rutas del gateway.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Sesión y cuenta
	authHandler := NewAuthHandler(deps.AuthUC, deps.Session)
	sess := api.Group("/session")
	sess.Get("/", authHandler.Session)
	sess.Post("/", authHandler.AdoptToken)
	sess.Delete("/", authHandler.SignOut)
	api.Get("/account", RequireSession(deps.Session, "Please sign in to view your account"), authHandler.Account)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/google", authHandler.Google)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/verify-email", authHandler.VerifyEmail)
	authGroup.Post("/resend-verification", authHandler.ResendVerification)
	authGroup.Get("/pending-email", authHandler.PendingEmail)

	// Carrito: sin middleware de sesión; el proxy notifica "sign in" sin llamar al backend.
	cartHandler := NewCartHandler(deps.Cart)
	cartGroup := api.Group("/cart")
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Post("/", cartHandler.Add)
	cartGroup.Put("/items/:productId", cartHandler.Update)
	cartGroup.Delete("/items/:productId", cartHandler.Remove)
	cartGroup.Delete("/", cartHandler.Clear)

	wishlistHandler := NewWishlistHandler(deps.Wishlist)
	wl := api.Group("/wishlist")
	wl.Get("/", wishlistHandler.Get)
	wl.Post("/:productId/toggle", wishlistHandler.Toggle)
	wl.Delete("/:productId", wishlistHandler.Remove)
	wl.Delete("/", wishlistHandler.Clear)

	// Catálogo (público)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	api.Get("/products", catalogHandler.Products)
	api.Get("/products/:id", catalogHandler.Product)
	api.Get("/offers", catalogHandler.Offers)
	api.Get("/categories", catalogHandler.Categories)
	api.Get("/reviews/:productId", catalogHandler.Reviews)

	filters := api.Group("/filters")
	filters.Get("/products", catalogHandler.ProductFilters)
	filters.Post("/products/apply", catalogHandler.ApplyFilters)
	filters.Post("/products/clear", catalogHandler.ClearProductFilters)
	filters.Get("/offers", catalogHandler.OfferFilters)
	filters.Post("/offers/apply", catalogHandler.ApplyFilters)
	filters.Post("/offers/clear", catalogHandler.ClearOfferFilters)

	noticeHandler := NewNotificationHandler(deps.Notices)
	api.Get("/notifications", noticeHandler.List)
	api.Delete("/notifications/:id", noticeHandler.Dismiss)

	engagementHandler := NewEngagementHandler(deps.Engagement)
	api.Post("/contact", engagementHandler.Contact)
	api.Post("/subscribe", engagementHandler.Subscribe)
}
