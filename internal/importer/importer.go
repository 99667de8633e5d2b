package importer

import (
	"io"

	"github.com/mfreitas/contas/internal/purchase"
)

type Bank string

const (
	BankNubank Bank = "nubank"
)

// Importer parses a card statement export into purchase params. Parsers
// fill the purchase fields only; house, card and author are attached by
// the caller.
type Importer interface {
	Parse(r io.Reader) ([]purchase.CreateParams, error)
}
