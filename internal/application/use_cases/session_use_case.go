package use_cases

import (
	"context"

	"github.com/hiyoshi/pos-register/internal/application/ports"
	"github.com/hiyoshi/pos-register/internal/domain/register"
	"github.com/hiyoshi/pos-register/internal/pkg/clock"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

// SessionUseCase opens the one draft transaction the terminal works
// against. Open is invoked once at startup; on failure the session stays
// unbound and checkout refuses to run until it resolves.
type SessionUseCase struct {
	ledger  ports.TransactionLedger
	session *register.Session
	clock   clock.Clock
	log     *logger.Logger
}

func NewSessionUseCase(ledger ports.TransactionLedger, session *register.Session, clk clock.Clock, log *logger.Logger) *SessionUseCase {
	return &SessionUseCase{
		ledger:  ledger,
		session: session,
		clock:   clk,
		log:     log,
	}
}

func (uc *SessionUseCase) Open(ctx context.Context) error {
	if id, ok := uc.session.TransactionID(); ok {
		uc.log.Info("Draft transaction already open", "transaction_id", id)
		return nil
	}

	identity := uc.session.Identity()
	now := uc.clock.Now()

	record, err := uc.ledger.CreateTransaction(ctx, ports.TransactionDraft{
		DateTime:     now,
		EmployeeCode: identity.EmployeeCode,
		StoreCode:    identity.StoreCode,
		PosNumber:    identity.PosNumber,
		TotalAmount:  0,
	})
	if err != nil {
		uc.log.Error("Failed to open draft transaction", "error", err.Error())
		return err
	}

	uc.session.Bind(record.TransactionID, now)
	uc.log.Info("Draft transaction opened",
		"transaction_id", record.TransactionID,
		"store_code", identity.StoreCode,
		"pos_number", identity.PosNumber,
	)
	return nil
}
