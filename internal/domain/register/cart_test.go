package register

import (
	"testing"

	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
)

func product(code string, price int64) Product {
	return Product{
		ID:    "P-" + code,
		Code:  code,
		Name:  "product " + code,
		Price: price,
	}
}

func TestCartAddOrIncrement(t *testing.T) {
	t.Run("repeat adds aggregate by code in first-add order", func(t *testing.T) {
		cart := NewCart()
		for _, code := range []string{"A", "B", "A", "C", "A"} {
			if _, err := cart.AddOrIncrement(product(code, 100)); err != nil {
				t.Fatalf("add %s: %v", code, err)
			}
		}

		lines := cart.Lines()
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}

		wantOrder := []string{"A", "B", "C"}
		wantQty := map[string]int{"A": 3, "B": 1, "C": 1}
		for i, line := range lines {
			if line.Code != wantOrder[i] {
				t.Fatalf("line %d: expected code %s, got %s", i, wantOrder[i], line.Code)
			}
			if line.Quantity != wantQty[line.Code] {
				t.Fatalf("line %s: expected quantity %d, got %d", line.Code, wantQty[line.Code], line.Quantity)
			}
		}
	})

	t.Run("first add opens a line at quantity 1", func(t *testing.T) {
		cart := NewCart()
		line, err := cart.AddOrIncrement(product("A", 150))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line.Quantity != 1 || line.UnitPrice != 150 {
			t.Fatalf("got line %+v", line)
		}
	})

	t.Run("increment clamps at 99 and reports it", func(t *testing.T) {
		cart := NewCart()
		cart.AddOrIncrement(product("A", 100))
		if err := cart.SetQuantity("A", MaxLineQuantity); err != nil {
			t.Fatalf("set quantity: %v", err)
		}

		line, err := cart.AddOrIncrement(product("A", 100))
		if err != domainErrors.ErrQuantityLimit {
			t.Fatalf("expected ErrQuantityLimit, got %v", err)
		}
		if line.Quantity != MaxLineQuantity {
			t.Fatalf("expected quantity to stay %d, got %d", MaxLineQuantity, line.Quantity)
		}
	})
}

func TestCartSetQuantity(t *testing.T) {
	t.Run("out of range leaves cart unchanged", func(t *testing.T) {
		cart := NewCart()
		cart.AddOrIncrement(product("A", 100))

		for _, n := range []int{0, -1, 100} {
			if err := cart.SetQuantity("A", n); err != domainErrors.ErrInvalidQuantity {
				t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", n, err)
			}
		}
		if lines := cart.Lines(); lines[0].Quantity != 1 {
			t.Fatalf("expected quantity 1 after rejected updates, got %d", lines[0].Quantity)
		}
	})

	t.Run("in range replaces exactly that line", func(t *testing.T) {
		cart := NewCart()
		cart.AddOrIncrement(product("A", 100))
		cart.AddOrIncrement(product("B", 200))

		if err := cart.SetQuantity("A", 42); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := cart.Lines()
		if lines[0].Quantity != 42 || lines[1].Quantity != 1 {
			t.Fatalf("got quantities %d and %d", lines[0].Quantity, lines[1].Quantity)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		cart := NewCart()
		if err := cart.SetQuantity("missing", 5); err != domainErrors.ErrLineNotFound {
			t.Fatalf("expected ErrLineNotFound, got %v", err)
		}
	})
}

func TestCartRemove(t *testing.T) {
	cart := NewCart()
	cart.AddOrIncrement(product("A", 100))
	cart.AddOrIncrement(product("B", 200))

	cart.Remove("A")
	lines := cart.Lines()
	if len(lines) != 1 || lines[0].Code != "B" {
		t.Fatalf("got lines %+v", lines)
	}

	// absent code is a no-op
	cart.Remove("A")
	if cart.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", cart.Len())
	}
}

func TestCartTotal(t *testing.T) {
	cart := NewCart()
	cart.AddOrIncrement(product("A", 100))
	cart.AddOrIncrement(product("A", 100))
	cart.AddOrIncrement(product("B", 250))

	if total := cart.Total(); total != 450 {
		t.Fatalf("expected total 450, got %d", total)
	}

	cart.Clear()
	if total := cart.Total(); total != 0 {
		t.Fatalf("expected empty total 0, got %d", total)
	}
	if cart.Len() != 0 {
		t.Fatalf("expected empty cart, got %d lines", cart.Len())
	}
}
