package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/billpay/payment-service/internal/adapter/handler/http"
	"github.com/billpay/payment-service/internal/config"
	"github.com/billpay/payment-service/internal/usecase"
)

// Usecases bundles the orchestrators served over HTTP.
type Usecases struct {
	Create *usecase.CreatePaymentUseCase
	Retry  *usecase.RetryPaymentUseCase
	Query  *usecase.PaymentQueryUseCase
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	usecases Usecases
}

type requestValidator struct {
	validator *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func NewServer(cfg *config.Config, logger *zap.Logger, usecases Usecases) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validator: validator.New()}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	return &Server{
		config:   cfg,
		logger:   logger,
		echo:     e,
		usecases: usecases,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	paymentHandler := handlers.NewPaymentHandler(
		s.usecases.Create,
		s.usecases.Retry,
		s.usecases.Query,
		s.logger,
	)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	payments := v1.Group("/payments")
	payments.POST("", paymentHandler.CreatePayment)
	payments.GET("", paymentHandler.ListPayments)
	payments.GET("/:id", paymentHandler.GetPayment)
	payments.POST("/:id/retry", paymentHandler.RetryPayment)
}
