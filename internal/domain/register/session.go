package register

import (
	"sync"
	"time"
)

// Identity is the fixed terminal identity a draft transaction is opened
// under.
type Identity struct {
	EmployeeCode string
	StoreCode    string
	PosNumber    int
}

// Session holds the one draft transaction ID for the lifetime of the
// process. The ID is unset until the opening call resolves; the first Bind
// wins and later binds are ignored.
type Session struct {
	mu            sync.Mutex
	identity      Identity
	transactionID string
	openedAt      time.Time
}

func NewSession(identity Identity) *Session {
	return &Session{
		identity: identity,
	}
}

func (s *Session) Identity() Identity {
	return s.identity
}

func (s *Session) Bind(transactionID string, openedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transactionID != "" {
		return false
	}
	s.transactionID = transactionID
	s.openedAt = openedAt
	return true
}

func (s *Session) TransactionID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transactionID, s.transactionID != ""
}

func (s *Session) OpenedAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.openedAt, s.transactionID != ""
}
