package ui

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// signedPct renders a month-over-month change with its sign, colored by
// direction.
func signedPct(d decimal.Decimal) string {
	s := d.StringFixed(1) + "%"
	if d.IsPositive() {
		return successStyle.Render("+" + s)
	}
	if d.IsNegative() {
		return expenseStyle.Render(s)
	}
	return mutedStyle.Render(s)
}

// pct renders a percentage that may be +Inf for an overdrawn zero budget.
func pct(v float64) string {
	if math.IsInf(v, 1) {
		return "over"
	}
	return fmt.Sprintf("%.0f%%", v)
}
