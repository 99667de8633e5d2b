package nubank

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a Nubank amount string into cents. Current exports
// use a dot decimal separator ("123.45" -> 12345); older ones used the
// Brazilian comma format ("1.234,56" -> 123456).
func parseAmount(s string) (int64, error) {
	clean := s
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
