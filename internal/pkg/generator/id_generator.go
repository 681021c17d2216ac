package generator

import (
	"fmt"

	"github.com/google/uuid"
)

// DetailIDGenerator issues the per-unit identifiers attached to ledger
// detail records. The backend keys details on this ID, so it must be unique
// within a transaction; UUIDs keep that holding without any shared counter.
type DetailIDGenerator struct{}

func NewDetailIDGenerator() *DetailIDGenerator {
	return &DetailIDGenerator{}
}

func (g *DetailIDGenerator) NewDetailID() string {
	return fmt.Sprintf("D-%s", uuid.NewString())
}
