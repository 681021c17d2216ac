package use_cases

import (
	"context"

	"github.com/hiyoshi/pos-register/internal/application/ports"
	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
	"github.com/hiyoshi/pos-register/internal/domain/register"
	"github.com/hiyoshi/pos-register/internal/pkg/generator"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

type PurchaseResult struct {
	TransactionID string `json:"transaction_id"`
	TotalAmount   int64  `json:"total_amount"`
	TotalWithTax  int64  `json:"total_with_tax"`
	PostedUnits   int    `json:"posted_units"`
	FailedUnits   int    `json:"failed_units"`
}

// PurchaseUseCase flushes the local cart to the ledger: one detail record
// per unit of quantity, posted sequentially, then the authoritative total
// is re-read from the server and tax applied. Checkout is best-effort — a
// failed unit is reported but does not halt the remaining units.
type PurchaseUseCase struct {
	ledger  ports.TransactionLedger
	session *register.Session
	cart    *register.Cart
	ids     *generator.DetailIDGenerator
	log     *logger.Logger

	taxRatePercent int64
}

func NewPurchaseUseCase(
	ledger ports.TransactionLedger,
	session *register.Session,
	cart *register.Cart,
	ids *generator.DetailIDGenerator,
	log *logger.Logger,
	taxRatePercent int64,
) *PurchaseUseCase {
	if taxRatePercent <= 0 {
		taxRatePercent = 10
	}
	return &PurchaseUseCase{
		ledger:         ledger,
		session:        session,
		cart:           cart,
		ids:            ids,
		log:            log,
		taxRatePercent: taxRatePercent,
	}
}

func (uc *PurchaseUseCase) ExecutePurchase(ctx context.Context) (*PurchaseResult, error) {
	transactionID, ok := uc.session.TransactionID()
	if !ok {
		return nil, domainErrors.ErrSessionNotReady
	}

	// The cart empties however the detail loop went; units already posted
	// stay on the ledger.
	defer uc.cart.Clear()

	posted := 0
	failed := 0
	for _, line := range uc.cart.Lines() {
		for unit := 1; unit <= line.Quantity; unit++ {
			detail := ports.DetailRecord{
				DetailID:     uc.ids.NewDetailID(),
				ProductID:    line.ProductID,
				ProductCode:  line.Code,
				ProductName:  line.Name,
				ProductPrice: line.UnitPrice,
			}

			if err := uc.ledger.CreateDetail(ctx, transactionID, detail); err != nil {
				failed++
				uc.log.Error("Detail post failed",
					"transaction_id", transactionID,
					"product_code", line.Code,
					"unit", unit,
					"error", err.Error(),
				)
				continue
			}
			posted++
		}
	}

	record, err := uc.ledger.GetTransaction(ctx, transactionID)
	if err != nil {
		uc.log.Error("Total refresh failed", "transaction_id", transactionID, "error", err.Error())
		return nil, err
	}

	result := &PurchaseResult{
		TransactionID: transactionID,
		TotalAmount:   record.TotalAmount,
		TotalWithTax:  register.TotalWithTax(record.TotalAmount, uc.taxRatePercent),
		PostedUnits:   posted,
		FailedUnits:   failed,
	}

	uc.log.Info("Purchase completed",
		"transaction_id", transactionID,
		"posted_units", posted,
		"failed_units", failed,
		"total_amount", result.TotalAmount,
		"total_with_tax", result.TotalWithTax,
	)

	return result, nil
}
