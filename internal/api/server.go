package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/xrpl-executor/internal/executor"
	"github.com/vultisig/xrpl-executor/internal/metrics"
)

type Config struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port string `envconfig:"PORT" default:"8080"`
}

type AddressValidator interface {
	Validate(ctx context.Context, address string, tagType *executor.AddressTagType, tag string) (executor.AddressValidationResult, error)
}

type FeeEstimator interface {
	Estimate(ctx context.Context) (executor.Fee, error)
}

type TransactionBuilder interface {
	Build(ctx context.Context, req executor.BuildTransferAmountRequest) (*executor.BuiltTransaction, error)
}

type Broadcaster interface {
	Broadcast(ctx context.Context, signedBlob string) (executor.Ack, error)
}

type StateProvider interface {
	GetState(ctx context.Context, txID string) (executor.TransactionState, error)
}

type HealthProvider interface {
	GetDisease(ctx context.Context) string
}

type IntegrationInfoProvider interface {
	GetInfo(ctx context.Context) (*executor.IntegrationInfo, error)
}

// Services are the executor components behind the HTTP API.
type Services struct {
	Addresses AddressValidator
	Fees      FeeEstimator
	Builder   TransactionBuilder
	Broadcast Broadcaster
	States    StateProvider
	Health    HealthProvider
	Info      IntegrationInfoProvider
}

// ServicesFromExecutor exposes every component of ex.
func ServicesFromExecutor(ex *executor.Executor) Services {
	return Services{
		Addresses: ex.Addresses,
		Fees:      ex.Fees,
		Builder:   ex.Builder,
		Broadcast: ex.Broadcast,
		States:    ex.States,
		Health:    ex.Health,
		Info:      ex.Info,
	}
}

type Server struct {
	cfg      Config
	name     string
	version  string
	services Services
	logger   logrus.FieldLogger
	echo     *echo.Echo
}

func NewServer(cfg Config, name, version string, services Services, logger logrus.FieldLogger) *Server {
	s := &Server{
		cfg:      cfg,
		name:     name,
		version:  version,
		services: services,
		logger:   logger.WithField("component", "api"),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(metrics.HTTPMiddleware())
	s.registerRoutes(e)
	s.echo = e

	return s
}

func (s *Server) registerRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/isalive", s.isAlive)
	g.GET("/integration-info", s.integrationInfo)
	g.GET("/addresses/:address/validity", s.addressValidity)
	g.POST("/transactions/estimated/transfer-amount", s.estimateTransferAmount)
	g.POST("/transactions/built/transfer-amount", s.buildTransferAmount)
	g.POST("/transactions/broadcasted", s.broadcast)
	g.GET("/transactions/:id/state", s.transactionState)
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves the API until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("starting api server on %s", addr)
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}
