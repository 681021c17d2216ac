package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
	"github.com/hiyoshi/pos-register/internal/domain/register"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

type fakeCatalog struct {
	products map[string]register.Product
	err      error
	calls    int
}

func (c *fakeCatalog) GetProductByCode(ctx context.Context, code string) (register.Product, error) {
	c.calls++
	if c.err != nil {
		return register.Product{}, c.err
	}
	product, ok := c.products[code]
	if !ok {
		return register.Product{}, domainErrors.ErrProductNotFound
	}
	return product, nil
}

func TestLookupHandler(t *testing.T) {
	apple := register.Product{ID: "P-1", Code: "A", Name: "apple", Price: 120}

	t.Run("found merges into cart", func(t *testing.T) {
		catalog := &fakeCatalog{products: map[string]register.Product{"A": apple}}
		cart := register.NewCart()
		handler := NewLookupHandler(catalog, cart, logger.NewLogger())

		resp, err := handler.Handle(context.Background(), LookupCommand{Code: "A"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Line.Quantity != 1 {
			t.Fatalf("expected quantity 1, got %d", resp.Line.Quantity)
		}

		// a fresh lookup per call, no caching
		if _, err := handler.Handle(context.Background(), LookupCommand{Code: "A"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if catalog.calls != 2 {
			t.Fatalf("expected 2 catalog calls, got %d", catalog.calls)
		}
		if lines := cart.Lines(); len(lines) != 1 || lines[0].Quantity != 2 {
			t.Fatalf("got lines %+v", lines)
		}
	})

	t.Run("not found leaves cart untouched", func(t *testing.T) {
		catalog := &fakeCatalog{products: map[string]register.Product{}}
		cart := register.NewCart()
		handler := NewLookupHandler(catalog, cart, logger.NewLogger())

		_, err := handler.Handle(context.Background(), LookupCommand{Code: "missing"})
		if !errors.Is(err, domainErrors.ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
		if cart.Len() != 0 {
			t.Fatalf("expected empty cart, got %d lines", cart.Len())
		}
	})

	t.Run("transport failure is not a not-found", func(t *testing.T) {
		catalog := &fakeCatalog{err: fmt.Errorf("%w: connection refused", domainErrors.ErrBackendUnavailable)}
		cart := register.NewCart()
		handler := NewLookupHandler(catalog, cart, logger.NewLogger())

		_, err := handler.Handle(context.Background(), LookupCommand{Code: "A"})
		if !errors.Is(err, domainErrors.ErrBackendUnavailable) {
			t.Fatalf("expected ErrBackendUnavailable, got %v", err)
		}
		if errors.Is(err, domainErrors.ErrProductNotFound) {
			t.Fatal("transport failure must stay distinct from not-found")
		}
		if cart.Len() != 0 {
			t.Fatalf("expected empty cart, got %d lines", cart.Len())
		}
	})

	t.Run("capped line still reports the lookup", func(t *testing.T) {
		catalog := &fakeCatalog{products: map[string]register.Product{"A": apple}}
		cart := register.NewCart()
		cart.AddOrIncrement(apple)
		if err := cart.SetQuantity("A", register.MaxLineQuantity); err != nil {
			t.Fatalf("set quantity: %v", err)
		}
		handler := NewLookupHandler(catalog, cart, logger.NewLogger())

		resp, err := handler.Handle(context.Background(), LookupCommand{Code: "A"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !resp.Capped {
			t.Fatal("expected capped response")
		}
		if resp.Line.Quantity != register.MaxLineQuantity {
			t.Fatalf("expected quantity %d, got %d", register.MaxLineQuantity, resp.Line.Quantity)
		}
	})
}
