package ports

import (
	"context"

	"github.com/hiyoshi/pos-register/internal/domain/register"
)

// CatalogClient resolves product codes against the remote catalog. A code
// with no match yields ErrProductNotFound; any other failure is a transport
// error.
type CatalogClient interface {
	GetProductByCode(ctx context.Context, code string) (register.Product, error)
}
