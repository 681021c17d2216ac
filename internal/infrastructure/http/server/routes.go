package server

import (
	"net/http"
	"strings"

	"github.com/hiyoshi/pos-register/internal/infrastructure/http/middleware"
	"github.com/hiyoshi/pos-register/internal/infrastructure/monitoring"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", s.healthHandler.HandleHealth())

	mux.HandleFunc("/lookup", s.lookupHandler.HandleLookup())
	mux.HandleFunc("/cart", s.cartHandler.HandleGetCart)
	mux.HandleFunc("/cart/", s.handleCartRoutes)
	mux.HandleFunc("/scan/start", s.scanHandler.HandleStart())
	mux.HandleFunc("/scan/stop", s.scanHandler.HandleStop())
	mux.HandleFunc("/purchase", s.purchaseHandler.HandlePurchase())

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = middleware.NewLoggingMiddleware(s.logger)(handler)
	handler = monitoring.WrapHandler(handler)

	return handler
}

func (s *Server) handleCartRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/cart/")
	parts := strings.Split(path, "/")

	if len(parts) == 2 && parts[0] == "items" && parts[1] != "" {
		if r.Method == http.MethodDelete {
			s.cartHandler.HandleRemoveItem(w, r)
			return
		}
	} else if len(parts) == 3 && parts[0] == "items" && parts[2] == "quantity" {
		if r.Method == http.MethodPost {
			s.cartHandler.HandleSetQuantity(w, r)
			return
		}
	}

	http.NotFound(w, r)
}
