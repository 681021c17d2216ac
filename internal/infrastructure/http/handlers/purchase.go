package handlers

import (
	"errors"
	"net/http"

	"github.com/hiyoshi/pos-register/internal/application/use_cases"
	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
	"github.com/hiyoshi/pos-register/internal/infrastructure/http/response"
	"github.com/hiyoshi/pos-register/internal/infrastructure/monitoring"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

type PurchaseHandler struct {
	purchase *use_cases.PurchaseUseCase
	log      *logger.Logger
}

func NewPurchaseHandler(purchase *use_cases.PurchaseUseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchase: purchase,
		log:      log,
	}
}

func (h *PurchaseHandler) HandlePurchase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		metrics := monitoring.NewPurchaseMetrics()
		metrics.RecordAttempt()

		result, err := h.purchase.ExecutePurchase(r.Context())
		if err != nil {
			h.log.Error("Purchase failed", "error", err.Error())
			if errors.Is(err, domainErrors.ErrSessionNotReady) {
				metrics.RecordFailure("session_not_ready")
			} else {
				metrics.RecordFailure("backend")
			}
			response.WriteDomainError(w, err)
			return
		}

		metrics.RecordSuccess(result.PostedUnits, result.FailedUnits)
		response.WriteSuccess(w, result)
	}
}
