package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/sushibar/internal/config"
	"github.com/polkiloo/sushibar/internal/server/http/handlers"
	"github.com/polkiloo/sushibar/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.RestaurantFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.Session(cfg.SessionTTL, cfg.CookieSecure))
	engine.Use(middleware.OptionalAuth(facade))

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	throttled := middleware.RateLimit(limiter)
	authRequired := middleware.AuthRequired(facade)
	staffOnly := middleware.StaffOnly()

	authHandler := handlers.NewAuthHandler(facade, cfg.CookieSecure)
	orderHandler := handlers.NewOrderHandler(facade, facade, cfg.CartPagePath, cfg.Location, logger)
	sessionHandler := handlers.NewSessionHandler(facade)
	menuHandler := handlers.NewMenuHandler(facade)
	inboxHandler := handlers.NewInboxHandler(facade, facade, facade, cfg.Location, logger)
	dashboardHandler := handlers.NewDashboardHandler(facade, cfg.Location)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	user := api.Group("/user", throttled)
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	api.GET("/search-menu-items", menuHandler.Search)

	engine.GET("/menu", menuHandler.Menu)
	engine.GET("/menu/featured", menuHandler.Featured)
	engine.POST("/contact", throttled, inboxHandler.SubmitContact)
	engine.POST("/reservation", throttled, inboxHandler.SubmitReservation)
	engine.GET("/session/messages", sessionHandler.Messages)

	order := engine.Group("/order")
	order.POST("/submit", throttled, orderHandler.Submit)
	order.GET("/last", sessionHandler.LastOrders)

	customer := order.Group("", authRequired)
	customer.GET("/history", orderHandler.History)
	customer.POST("/:id/action", orderHandler.CustomerAction)

	kitchen := order.Group("", authRequired, staffOnly)
	kitchen.GET("/live", orderHandler.Live)
	kitchen.GET("/food-table", orderHandler.FoodTable)
	kitchen.GET("/manage-history", orderHandler.ManageHistory)
	kitchen.POST("/:id/admin-action", orderHandler.AdminAction)
	kitchen.DELETE("/:id", orderHandler.Delete)

	engine.POST("/category/create", authRequired, staffOnly, menuHandler.CreateCategory)

	dashboard := engine.Group("/dashboard", authRequired, staffOnly)
	dashboard.GET("/metrics", dashboardHandler.Metrics)
	dashboard.GET("/data", dashboardHandler.Data)
	dashboard.POST("/menuitems", menuHandler.CreateItem)
	dashboard.PUT("/menuitems/:id", menuHandler.UpdateItem)
	dashboard.DELETE("/menuitems/:id", menuHandler.DeleteItem)
	dashboard.GET("/contacts", inboxHandler.Contacts)
	dashboard.POST("/contacts/:id/:action", inboxHandler.DecideContact)
	dashboard.GET("/reservations", inboxHandler.Reservations)
	dashboard.POST("/reservations/:id/:action", inboxHandler.DecideReservation)

	return engine
}
