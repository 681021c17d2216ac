package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hiyoshi/pos-register/internal/application/commands"
	"github.com/hiyoshi/pos-register/internal/application/use_cases"
	"github.com/hiyoshi/pos-register/internal/config"
	"github.com/hiyoshi/pos-register/internal/domain/register"
	"github.com/hiyoshi/pos-register/internal/domain/scanner"
	"github.com/hiyoshi/pos-register/internal/infrastructure/http/handlers"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

type Server struct {
	server          *http.Server
	logger          *logger.Logger
	healthHandler   *handlers.HealthHandler
	lookupHandler   *handlers.LookupHandler
	cartHandler     *handlers.CartHandler
	scanHandler     *handlers.ScanHandler
	purchaseHandler *handlers.PurchaseHandler
}

func NewServer(
	cfg *config.Config,
	lookup *commands.LookupHandler,
	cart *register.Cart,
	controller *scanner.Controller,
	purchase *use_cases.PurchaseUseCase,
	session *register.Session,
	log *logger.Logger,
) *Server {
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server:          server,
		logger:          log,
		healthHandler:   handlers.NewHealthHandler(session, controller, log),
		lookupHandler:   handlers.NewLookupHandler(lookup, log),
		cartHandler:     handlers.NewCartHandler(cart, log),
		scanHandler:     handlers.NewScanHandler(controller, log),
		purchaseHandler: handlers.NewPurchaseHandler(purchase, log),
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
