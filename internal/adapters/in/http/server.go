package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Server adapts the application use cases to the REST API.
type Server struct {
	handlers Handlers
	tokens   TokenParser
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, tokens TokenParser, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		tokens:   tokens,
		logger:   logger.With("component", "http"),
	}
}

// RegisterRoutes mounts the API on e. Menu browsing, fee previews, geocoding
// and the payment webhook are public; everything else needs a session.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})

	e.POST("/auth/signup", s.SignUp)
	e.POST("/auth/login", s.Login)
	e.GET("/menu", s.GetMenu)
	e.POST("/delivery/calculate-fee", s.CalculateDeliveryFee)
	e.GET("/geocode", s.Geocode)
	e.POST("/webhook", s.Webhook)

	api := e.Group("", s.Authenticate)

	api.POST("/users", s.RegisterUser)

	api.POST("/categories", s.CreateCategory)
	api.DELETE("/categories/:id", s.DeleteCategory)
	api.POST("/menu-items", s.CreateMenuItem)
	api.POST("/menu-images", s.UploadMenuImage)

	api.POST("/checkout", s.Checkout)
	api.GET("/loyalty", s.GetLoyaltyStatus)
	api.GET("/my-orders", s.GetMyOrders)
	api.GET("/my-orders/:id/tracking", s.GetOrderTracking)

	api.GET("/orders", s.GetActiveOrders)
	api.PATCH("/orders", s.UpdateOrderStatus)
	api.GET("/couriers/available", s.GetAvailableCouriers)
	api.PATCH("/courier-assignment", s.AssignCourier)

	api.PATCH("/courier-completion", s.CompleteDelivery)
	api.PATCH("/courier/availability", s.SetCourierAvailability)
	api.PATCH("/courier/location", s.UpdateCourierLocation)
	api.GET("/my-delivery", s.GetMyDelivery)
}
