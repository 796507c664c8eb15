// Package format renders model values for display. Rounding happens here and nowhere else.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/breakeven/internal/breakeven"
)

// Placeholder is shown for values that are not defined.
const Placeholder = "—"

const currencySymbol = "£"

var half = decimal.NewFromFloat(0.5)

// Units formats a unit count according to the rounding mode. Whole units round
// halves toward +Inf (-50.5 shows as -50). Two decimals round the exact binary
// value, so 1.005 shows as 1.00.
func Units(u float64, mode breakeven.RoundingMode) string {
	if math.IsNaN(u) || math.IsInf(u, 0) {
		return Placeholder
	}
	if mode == breakeven.RoundTwoDecimal {
		return decimal.NewFromFloatWithExponent(u, -2).StringFixed(2)
	}
	return decimal.NewFromFloat(u).Add(half).Floor().String()
}

// Money formats whole pounds with thousands separators, e.g. "£1,200".
func Money(m float64) string {
	return money(m, 0)
}

// Money2 formats pounds and pence, e.g. "£2,000.00".
func Money2(m float64) string {
	return money(m, 2)
}

// Number formats a plain quantity with thousands separators and at most three decimals.
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	d := decimal.NewFromFloat(v).Round(3)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole, frac, _ := strings.Cut(d.String(), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + d.String()
	}
	out := sign + humanize.Comma(n)
	if frac != "" {
		out += "." + frac
	}
	return out
}

func money(m float64, places int32) string {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return Placeholder
	}
	d := decimal.NewFromFloat(m).Round(places)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	layout := "#,###."
	if places == 2 {
		layout = "#,###.##"
	}
	return sign + currencySymbol + humanize.FormatFloat(layout, d.InexactFloat64())
}
