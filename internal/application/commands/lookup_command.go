package commands

import (
	"context"
	"errors"

	"github.com/hiyoshi/pos-register/internal/application/ports"
	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
	"github.com/hiyoshi/pos-register/internal/domain/register"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

type LookupCommand struct {
	Code string
}

type LookupResponse struct {
	Product register.Product `json:"product"`
	Line    register.Line    `json:"line"`
	// Capped reports that the line was already at the quantity limit and
	// the add was clamped.
	Capped bool `json:"capped"`
}

// LookupHandler is the single path from a product code (typed or scanned)
// into the cart.
type LookupHandler struct {
	catalog ports.CatalogClient
	cart    *register.Cart
	log     *logger.Logger
}

func NewLookupHandler(catalog ports.CatalogClient, cart *register.Cart, log *logger.Logger) *LookupHandler {
	return &LookupHandler{
		catalog: catalog,
		cart:    cart,
		log:     log,
	}
}

func (h *LookupHandler) Handle(ctx context.Context, cmd LookupCommand) (*LookupResponse, error) {
	product, err := h.catalog.GetProductByCode(ctx, cmd.Code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrProductNotFound) {
			h.log.Info("Code not registered in catalog", "code", cmd.Code)
			return nil, err
		}
		h.log.Error("Catalog lookup failed", "code", cmd.Code, "error", err.Error())
		return nil, err
	}

	line, err := h.cart.AddOrIncrement(product)
	capped := errors.Is(err, domainErrors.ErrQuantityLimit)
	if err != nil && !capped {
		return nil, err
	}
	if capped {
		h.log.Warn("Cart line at maximum quantity", "code", cmd.Code)
	}

	return &LookupResponse{
		Product: product,
		Line:    line,
		Capped:  capped,
	}, nil
}
