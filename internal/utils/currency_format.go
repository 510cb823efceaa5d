package utils

import "strconv"

// FormatGNF renders a whole-GNF amount with thousands separators for human
// display, e.g. 98004737 -> "98 004 737 GNF". Guinean usage follows French
// digit grouping (narrow spaces, rendered as plain spaces here).
func FormatGNF(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	neg := false
	if digits[0] == '-' {
		neg = true
		digits = digits[1:]
	}

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, d)
	}
	if neg {
		out = append([]byte{'-'}, out...)
	}
	return string(out) + " GNF"
}
