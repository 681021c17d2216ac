package monitoring

type LookupMetrics struct {
	code string
}

func NewLookupMetrics(code string) *LookupMetrics {
	return &LookupMetrics{
		code: code,
	}
}

func (m *LookupMetrics) RecordFound() {
	RecordLookup("found")
}

func (m *LookupMetrics) RecordNotFound() {
	RecordLookup("not_found")
}

func (m *LookupMetrics) RecordError() {
	RecordLookup("error")
}

type PurchaseMetrics struct{}

func NewPurchaseMetrics() *PurchaseMetrics {
	return &PurchaseMetrics{}
}

func (m *PurchaseMetrics) RecordAttempt() {
	RecordPurchaseAttempt()
}

func (m *PurchaseMetrics) RecordSuccess(postedUnits, failedUnits int) {
	RecordPurchaseSuccess(postedUnits, failedUnits)
}

func (m *PurchaseMetrics) RecordFailure(reason string) {
	RecordPurchaseFailure(reason)
}
