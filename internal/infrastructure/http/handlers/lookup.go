package handlers

import (
	"errors"
	"net/http"

	"github.com/hiyoshi/pos-register/internal/application/commands"
	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
	"github.com/hiyoshi/pos-register/internal/infrastructure/http/response"
	"github.com/hiyoshi/pos-register/internal/infrastructure/monitoring"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

type LookupHandler struct {
	lookup *commands.LookupHandler
	log    *logger.Logger
}

func NewLookupHandler(lookup *commands.LookupHandler, log *logger.Logger) *LookupHandler {
	return &LookupHandler{
		lookup: lookup,
		log:    log,
	}
}

// HandleLookup resolves a typed or scanned code and merges the result into
// the cart.
func (h *LookupHandler) HandleLookup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			response.WriteValidationError(w, "Validation failed", map[string]string{
				"code": "code is required",
			})
			return
		}

		metrics := monitoring.NewLookupMetrics(code)

		resp, err := h.lookup.Handle(r.Context(), commands.LookupCommand{Code: code})
		if err != nil {
			if errors.Is(err, domainErrors.ErrProductNotFound) {
				metrics.RecordNotFound()
			} else {
				metrics.RecordError()
			}
			response.WriteDomainError(w, err)
			return
		}

		metrics.RecordFound()
		response.WriteSuccess(w, resp)
	}
}
