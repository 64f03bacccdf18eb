// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forkpoint/forkpoint-service/internal/handler"
	"github.com/forkpoint/forkpoint-service/internal/middleware"
	"github.com/forkpoint/forkpoint-service/internal/server"
)

// New builds the Echo instance with the full middleware chain and all
// route groups registered.
func New(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// Order matters: request id before the context enhancer, tracing
	// before anything that reads the transaction.
	e.Use(m.Global.Recover())
	e.Use(m.Global.Secure())
	e.Use(m.Global.CORS())
	e.Use(middleware.RequestID())
	e.Use(m.Tracing.NewRelicMiddleware())
	e.Use(m.Tracing.EnhanceTracing())
	e.Use(m.Context.EnhanceContext())
	e.Use(m.Global.RequestLogger())

	registerSystemRoutes(e, h)
	registerAPIRoutes(e, h, m)

	return e
}

// registerAPIRoutes wires the /api surface.
func registerAPIRoutes(e *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	api := e.Group("/api")

	// Credential endpoints are the abuse magnets, so they get a per-IP
	// rate limit on top of everything else.
	auth := api.Group("/auth", m.RateLimit.Limit(5))
	auth.POST("", handler.Handle(h.Auth.Handler, h.Auth.Register, http.StatusCreated))
	auth.PUT("", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK))
	auth.DELETE("", handler.Handle(h.Auth.Handler, h.Auth.Logout, http.StatusOK), m.Auth.RequireAuth)

	user := api.Group("/user", m.Auth.RequireAuth)
	user.GET("", handler.Handle(h.User.Handler, h.User.List, http.StatusOK))
	user.GET("/me", handler.Handle(h.User.Handler, h.User.Me, http.StatusOK))
	user.GET("/:userId", handler.Handle(h.User.Handler, h.User.Get, http.StatusOK))
	user.PUT("/:userId", handler.Handle(h.User.Handler, h.User.Update, http.StatusOK))
	user.DELETE("/:userId", handler.Handle(h.User.Handler, h.User.Delete, http.StatusOK))

	order := api.Group("/order")
	order.GET("/menu", handler.Handle(h.Menu.Handler, h.Menu.List, http.StatusOK))
	order.PUT("/menu", handler.Handle(h.Menu.Handler, h.Menu.Add, http.StatusOK), m.Auth.RequireAuth)
	order.GET("", handler.Handle(h.Order.Handler, h.Order.History, http.StatusOK), m.Auth.RequireAuth)
	order.POST("", handler.Handle(h.Order.Handler, h.Order.Create, http.StatusCreated), m.Auth.RequireAuth)

	franchise := api.Group("/franchise")
	franchise.GET("", handler.Handle(h.Franchise.Handler, h.Franchise.List, http.StatusOK), m.Auth.OptionalAuth)
	franchise.GET("/:userId", handler.Handle(h.Franchise.Handler, h.Franchise.ListForUser, http.StatusOK), m.Auth.RequireAuth)
	franchise.POST("", handler.Handle(h.Franchise.Handler, h.Franchise.Create, http.StatusCreated), m.Auth.RequireAuth)
	franchise.DELETE("/:franchiseId", handler.Handle(h.Franchise.Handler, h.Franchise.Delete, http.StatusOK), m.Auth.RequireAuth)
	franchise.POST("/:franchiseId/store", handler.Handle(h.Franchise.Handler, h.Franchise.CreateStore, http.StatusCreated), m.Auth.RequireAuth)
	franchise.DELETE("/:franchiseId/store/:storeId", handler.Handle(h.Franchise.Handler, h.Franchise.DeleteStore, http.StatusOK), m.Auth.RequireAuth)
}
