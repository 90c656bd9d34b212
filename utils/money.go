// utils/money.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount converts a locale-formatted currency string like "R$ 150,00"
// to a float. Unparsable input yields 0 so a single bad record never breaks
// a report total.
func ParseAmount(s string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, "R$", ""))
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount renders a float the way the mobile client displays money:
// "R$ 150,00".
func FormatAmount(v float64) string {
	return "R$ " + strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}
