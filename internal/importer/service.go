package importer

import (
	"fmt"
	"io"

	"github.com/mfreitas/contas/internal/importer/nubank"
	"github.com/mfreitas/contas/internal/purchase"
)

type Service struct {
	nubankImporter Importer
}

func NewService() *Service {
	return &Service{
		nubankImporter: nubank.New(),
	}
}

func (s *Service) Import(bank Bank, r io.Reader) ([]purchase.CreateParams, error) {
	var importer Importer

	switch bank {
	case BankNubank:
		importer = s.nubankImporter
	default:
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	return importer.Parse(r)
}
