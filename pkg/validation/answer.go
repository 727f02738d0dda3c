package validation

import (
	"strconv"
	"strings"
)

// FinalNumber extracts the final numeric answer from an answer string.
// GSM8K answers end in a "#### <number>" marker; everything else falls
// back to the last number appearing in the text ("39 chocolates" yields
// 39). Returns false when the string holds no number.
func FinalNumber(answer string) (float64, bool) {
	s := strings.TrimSpace(answer)
	if idx := strings.LastIndex(s, "####"); idx >= 0 {
		s = strings.TrimSpace(s[idx+4:])
	}

	raw, ok := lastNumber(s)
	if !ok {
		return 0, false
	}
	return parseFloat(raw)
}

// lastNumber scans backwards for the last numeric token, tolerating
// thousands separators ("1,200") and trailing punctuation.
func lastNumber(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	start, end := -1, -1
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == ',' {
			end = i + 1
			start = i
			for start > 0 {
				pc := s[start-1]
				if (pc >= '0' && pc <= '9') || pc == '.' || pc == ',' || pc == '-' {
					start--
					continue
				}
				break
			}
			break
		}
	}
	if start < 0 || end < 0 || start >= end {
		return "", false
	}

	raw := strings.TrimSpace(s[start:end])
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.Trim(raw, ".")
	if raw == "" || raw == "-" {
		return "", false
	}
	return raw, true
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
