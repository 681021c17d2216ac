package ports

import (
	"context"
	"time"
)

type TransactionDraft struct {
	DateTime     time.Time
	EmployeeCode string
	StoreCode    string
	PosNumber    int
	TotalAmount  int64
}

type TransactionRecord struct {
	TransactionID string
	TotalAmount   int64
}

// DetailRecord is one backend-side row for exactly one purchased unit; the
// ledger schema carries no quantity column.
type DetailRecord struct {
	DetailID     string
	ProductID    string
	ProductCode  string
	ProductName  string
	ProductPrice int64
}

// TransactionLedger is the remote transaction ledger consumed over REST.
type TransactionLedger interface {
	CreateTransaction(ctx context.Context, draft TransactionDraft) (TransactionRecord, error)
	GetTransaction(ctx context.Context, transactionID string) (TransactionRecord, error)
	CreateDetail(ctx context.Context, transactionID string, detail DetailRecord) error
}
