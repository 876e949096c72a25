package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
	"github.com/iliyamo/room-reservation/internal/model"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Room        *handler.RoomHandler
	Reservation *handler.ReservationHandler
	Admin       *handler.AdminHandler
}

// RegisterRoutes wires the full route table onto the Echo instance.
// Public routes carry no middleware, /v1 routes require a valid access
// token, and /v1/admin plus room mutations additionally require the
// ADMIN role.  The token-bucket limiter applies to everything when a
// Redis client is available.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))

	e.GET("/healthz", handler.Health)

	// Browsing active rooms needs no session.
	e.GET("/v1/rooms", h.Room.List)

	// Session lifecycle.  Refresh and logout authenticate via the
	// refresh token in the body, not the Authorization header.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	// Everything below requires a valid access token.
	v1 := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	v1.POST("/auth/logout-all", h.Auth.LogoutAll)

	v1.GET("/me", h.User.Me)
	v1.PATCH("/me", h.User.UpdateMe)
	v1.DELETE("/me", h.User.DeleteMe)

	v1.GET("/rooms/:id", h.Room.Get)

	v1.POST("/reservations", h.Reservation.Create)
	v1.GET("/reservations", h.Reservation.List)
	v1.GET("/reservations/history", h.Reservation.History)
	v1.GET("/reservations/:id", h.Reservation.Get)
	v1.PATCH("/reservations/:id/cancel", h.Reservation.Cancel)
	v1.DELETE("/reservations/:id", h.Reservation.Delete)

	// Room mutations are admin-only; reads above stay open to every
	// authenticated user.
	rooms := v1.Group("/rooms", middleware.RequireRole(model.RoleAdmin))
	rooms.POST("", h.Room.Create)
	rooms.PATCH("/:id", h.Room.Update)
	rooms.PATCH("/:id/status", h.Room.UpdateStatus)
	rooms.DELETE("/:id", h.Room.Delete)

	admin := v1.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/reservations", h.Admin.ListReservations)
	admin.DELETE("/reservations/:id", h.Admin.DeleteReservation)
	admin.DELETE("/users/:id", h.Admin.DeleteUser)
}
