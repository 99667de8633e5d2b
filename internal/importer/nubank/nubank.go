// Package nubank parses the CSV statement export of a Nubank credit
// card: a "date,category,title,amount" header followed by one row per
// charge. Installment purchases carry a trailing "n/m" in the title.
package nubank

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	enc "github.com/mfreitas/contas/internal/encoding"
	"github.com/mfreitas/contas/internal/purchase"
)

const (
	colDate     = "date"
	colCategory = "category"
	colTitle    = "title"
	colAmount   = "amount"
)

// installmentSuffix matches a trailing installment marker in a title,
// e.g. "Magalu - Parcela 2/6" or "Amazon 3/10".
var installmentSuffix = regexp.MustCompile(`(?:-\s*)?(?:[Pp]arcela\s+)?(\d+/\d+)\s*$`)

type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) ([]purchase.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	cols, headerIdx := findHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no nubank header found: expected columns %q, %q, %q", colDate, colTitle, colAmount)
	}

	return parseRows(cols, rows[headerIdx+1:])
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// findHeader scans for the row carrying the expected column names.
// Nubank puts it first, but skipping preamble rows costs nothing.
func findHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		_, hasDate := cols[colDate]
		_, hasTitle := cols[colTitle]
		_, hasAmount := cols[colAmount]

		if hasDate && hasTitle && hasAmount {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func parseRows(cols colIndex, rows [][]string) ([]purchase.CreateParams, error) {
	dateIdx := cols[colDate]
	titleIdx := cols[colTitle]
	amountIdx := cols[colAmount]

	categoryIdx := -1
	if idx, ok := cols[colCategory]; ok {
		categoryIdx = idx
	}

	var params []purchase.CreateParams

	for _, row := range rows {
		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		title := cellValue(row, titleIdx)
		if title == "" {
			continue
		}

		cents, err := parseAmount(cellValue(row, amountIdx))
		if err != nil {
			continue
		}

		// Negative rows are payments and refunds, not purchases.
		if cents <= 0 {
			continue
		}

		description, installment := splitInstallment(title)

		params = append(params, purchase.CreateParams{
			Amount:      cents,
			Description: description,
			Category:    cellValue(row, categoryIdx),
			Installment: installment,
			Date:        date,
		})
	}

	return params, nil
}

// splitInstallment pulls a trailing "n/m" marker out of a title.
// "Magalu - Parcela 2/6" becomes ("Magalu", "2/6"); titles without a
// marker come back unchanged.
func splitInstallment(title string) (description, installment string) {
	m := installmentSuffix.FindStringSubmatchIndex(title)
	if m == nil {
		return title, ""
	}

	installment = title[m[2]:m[3]]
	description = strings.TrimSpace(title[:m[0]])

	if description == "" {
		// The title was nothing but the marker; keep it as description.
		return title, installment
	}

	return description, installment
}

// parseDate tries the formats Nubank has shipped over the years.
func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
