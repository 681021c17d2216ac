package handlers

import (
	"errors"
	"net/http"

	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
	"github.com/hiyoshi/pos-register/internal/domain/scanner"
	"github.com/hiyoshi/pos-register/internal/infrastructure/http/response"
	"github.com/hiyoshi/pos-register/internal/infrastructure/monitoring"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

type ScanHandler struct {
	controller *scanner.Controller
	log        *logger.Logger
}

func NewScanHandler(controller *scanner.Controller, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		controller: controller,
		log:        log,
	}
}

type ScanStateResponse struct {
	State string `json:"state"`
}

func (h *ScanHandler) HandleStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if err := h.controller.Start(r.Context()); err != nil {
			reason := "camera_unavailable"
			if errors.Is(err, domainErrors.ErrScannerBusy) {
				reason = "busy"
			}
			monitoring.RecordScanFailure(reason)
			response.WriteDomainError(w, err)
			return
		}

		monitoring.RecordScanStarted()
		response.WriteSuccess(w, ScanStateResponse{State: h.controller.State().String()})
	}
}

func (h *ScanHandler) HandleStop() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if err := h.controller.Stop(); err != nil {
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, ScanStateResponse{State: h.controller.State().String()})
	}
}
