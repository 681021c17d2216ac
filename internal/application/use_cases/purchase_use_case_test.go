package use_cases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hiyoshi/pos-register/internal/application/ports"
	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
	"github.com/hiyoshi/pos-register/internal/domain/register"
	"github.com/hiyoshi/pos-register/internal/pkg/generator"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

type fakeLedger struct {
	details      []ports.DetailRecord
	detailErrs   map[int]error // by call index, 0-based
	serverTotal  int64
	getErr       error
	totalFetched bool
	fetchAfter   int // detail calls seen when GetTransaction ran
}

func (l *fakeLedger) CreateTransaction(ctx context.Context, draft ports.TransactionDraft) (ports.TransactionRecord, error) {
	return ports.TransactionRecord{TransactionID: "T-1"}, nil
}

func (l *fakeLedger) GetTransaction(ctx context.Context, transactionID string) (ports.TransactionRecord, error) {
	l.totalFetched = true
	l.fetchAfter = len(l.details)
	if l.getErr != nil {
		return ports.TransactionRecord{}, l.getErr
	}
	return ports.TransactionRecord{TransactionID: transactionID, TotalAmount: l.serverTotal}, nil
}

func (l *fakeLedger) CreateDetail(ctx context.Context, transactionID string, detail ports.DetailRecord) error {
	index := len(l.details)
	l.details = append(l.details, detail)
	if err, ok := l.detailErrs[index]; ok {
		return err
	}
	return nil
}

func boundSession(t *testing.T) *register.Session {
	t.Helper()
	session := register.NewSession(register.Identity{EmployeeCode: "EMP01", StoreCode: "30", PosNumber: 90})
	session.Bind("T-1", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	return session
}

func newPurchaseUseCase(ledger ports.TransactionLedger, session *register.Session, cart *register.Cart) *PurchaseUseCase {
	return NewPurchaseUseCase(ledger, session, cart, generator.NewDetailIDGenerator(), logger.NewLogger(), 10)
}

func TestExecutePurchase(t *testing.T) {
	apple := register.Product{ID: "P-1", Code: "A", Name: "apple", Price: 100}
	tea := register.Product{ID: "P-2", Code: "B", Name: "tea", Price: 250}

	t.Run("one detail call per unit, then total refresh", func(t *testing.T) {
		ledger := &fakeLedger{serverTotal: 450}
		cart := register.NewCart()
		cart.AddOrIncrement(apple)
		cart.AddOrIncrement(apple)
		cart.AddOrIncrement(tea)

		result, err := newPurchaseUseCase(ledger, boundSession(t), cart).ExecutePurchase(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(ledger.details) != 3 {
			t.Fatalf("expected 3 detail calls, got %d", len(ledger.details))
		}
		if ledger.details[0].ProductCode != "A" || ledger.details[1].ProductCode != "A" || ledger.details[2].ProductCode != "B" {
			t.Fatalf("details out of order: %+v", ledger.details)
		}
		if !ledger.totalFetched || ledger.fetchAfter != 3 {
			t.Fatalf("total must be refreshed after all details, fetched after %d", ledger.fetchAfter)
		}

		if result.TotalAmount != 450 || result.TotalWithTax != 495 {
			t.Fatalf("got totals %d / %d", result.TotalAmount, result.TotalWithTax)
		}
		if result.PostedUnits != 3 || result.FailedUnits != 0 {
			t.Fatalf("got posted %d, failed %d", result.PostedUnits, result.FailedUnits)
		}
		if cart.Len() != 0 {
			t.Fatal("cart must be cleared after checkout")
		}
	})

	t.Run("detail IDs are unique per unit", func(t *testing.T) {
		ledger := &fakeLedger{serverTotal: 200}
		cart := register.NewCart()
		cart.AddOrIncrement(apple)
		cart.AddOrIncrement(apple)

		if _, err := newPurchaseUseCase(ledger, boundSession(t), cart).ExecutePurchase(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		seen := make(map[string]bool)
		for _, detail := range ledger.details {
			if detail.DetailID == "" {
				t.Fatal("detail ID must not be empty")
			}
			if seen[detail.DetailID] {
				t.Fatalf("duplicate detail ID %s", detail.DetailID)
			}
			seen[detail.DetailID] = true
		}
	})

	t.Run("unbound session fails fast with no calls", func(t *testing.T) {
		ledger := &fakeLedger{}
		session := register.NewSession(register.Identity{})
		cart := register.NewCart()
		cart.AddOrIncrement(apple)

		_, err := newPurchaseUseCase(ledger, session, cart).ExecutePurchase(context.Background())
		if !errors.Is(err, domainErrors.ErrSessionNotReady) {
			t.Fatalf("expected ErrSessionNotReady, got %v", err)
		}
		if len(ledger.details) != 0 || ledger.totalFetched {
			t.Fatal("no network activity expected")
		}
		if cart.Len() != 1 {
			t.Fatal("cart must be kept when checkout is refused")
		}
	})

	t.Run("a failed unit does not halt the rest", func(t *testing.T) {
		ledger := &fakeLedger{
			serverTotal: 350,
			detailErrs:  map[int]error{1: errors.New("insert failed")},
		}
		cart := register.NewCart()
		cart.AddOrIncrement(apple)
		cart.AddOrIncrement(apple)
		cart.AddOrIncrement(tea)

		result, err := newPurchaseUseCase(ledger, boundSession(t), cart).ExecutePurchase(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(ledger.details) != 3 {
			t.Fatalf("expected all 3 units attempted, got %d", len(ledger.details))
		}
		if result.PostedUnits != 2 || result.FailedUnits != 1 {
			t.Fatalf("got posted %d, failed %d", result.PostedUnits, result.FailedUnits)
		}
		if cart.Len() != 0 {
			t.Fatal("cart must be cleared even after partial failure")
		}
	})

	t.Run("total refresh failure still clears the cart", func(t *testing.T) {
		ledger := &fakeLedger{getErr: errors.New("backend down")}
		cart := register.NewCart()
		cart.AddOrIncrement(apple)

		_, err := newPurchaseUseCase(ledger, boundSession(t), cart).ExecutePurchase(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
		if cart.Len() != 0 {
			t.Fatal("cart must be cleared once the detail loop has run")
		}
	})
}
