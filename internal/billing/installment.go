package billing

import "regexp"

// installmentPattern matches markers like "2/6": current installment over
// total installments, both plain positive integers.
var installmentPattern = regexp.MustCompile(`^(\d+)/(\d+)$`)

// ParseInstallment parses an installment marker of the form
// "current/total". It reports ok=false for anything that is not a
// well-formed marker: wrong shape, non-positive integers, or
// current > total. A failed parse means "not an installment purchase",
// never an error.
func ParseInstallment(s string) (current, total int, ok bool) {
	m := installmentPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}

	current = atoiDigits(m[1])
	total = atoiDigits(m[2])

	if current < 1 || total < 1 || current > total {
		return 0, 0, false
	}

	return current, total, true
}

// atoiDigits converts a digit-only string, saturating instead of
// overflowing on absurdly long input.
func atoiDigits(s string) int {
	const limit = 1 << 30

	n := 0

	for _, r := range s {
		n = n*10 + int(r-'0')
		if n > limit {
			return limit
		}
	}

	return n
}
