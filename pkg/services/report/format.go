package report

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display locale is pinned to English so formatted output is stable across
// deployments: 1234567.89 renders as "1,234,568".
var printer = message.NewPrinter(language.English)

// FormatNumber renders a numeric value with thousands separators, rounded to
// a whole number. Missing or non-numeric values render as zero.
func FormatNumber(v any) string {
	n, _ := toNumber(v)
	return printer.Sprintf("%.0f", n)
}

// toNumber coerces a row value to float64. Numbers pass through, numeric
// strings are parsed, everything else (including nil) is 0.
func toNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case string:
		if n, err := strconv.ParseFloat(val, 64); err == nil {
			return n, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// formatValue renders a raw cell value verbatim: numbers without a trailing
// ".0", strings as-is, nil as empty.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return printer.Sprintf("%v", val)
	}
}
