// Package core provides amount parsing and formatting utilities.
//
// This file contains functions for parsing monetary amounts read from
// tabular sources and for formatting totals for display.
package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Amount grouping forms. A single group after the leading digits is
// ambiguous for dots ("22.368" is a decimal), so pt-BR grouping without a
// decimal comma needs two dot groups.
var (
	usGrouped = regexp.MustCompile(`^[1-9]\d{0,2}(,\d{3})+(\.\d*)?$`)
	brGrouped = regexp.MustCompile(`^[1-9]\d{0,2}((\.\d{3})+,\d*|(\.\d{3}){2,})$`)
	decComma  = regexp.MustCompile(`^\d*,\d+$`)
)

// ParseAmount converts a cell value to a float64 amount.
//
// Blank cells count as zero, matching the way missing numbers are skipped
// when summing. A leading currency symbol is ignored. Thousands separators
// are stripped in both the US ("1,234.56") and pt-BR ("1.234,56") forms. A
// lone comma is a decimal separator unless it is followed by exactly three
// digits. Exponent notation and negative values are accepted.
//
// Examples:
//
//	ParseAmount("261.96")    -> 261.96, nil
//	ParseAmount("1,234.50")  -> 1234.5, nil
//	ParseAmount("1.234,56")  -> 1234.56, nil
//	ParseAmount("1,234")     -> 1234, nil
//	ParseAmount("12,5")      -> 12.5, nil
//	ParseAmount("1e+06")     -> 1000000, nil
//	ParseAmount("-383.031")  -> -383.031, nil
//	ParseAmount("")          -> 0, nil
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	if !neg && strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	switch {
	case usGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case brGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case decComma.MatchString(s):
		s = strings.Replace(s, ",", ".", 1)
	}
	if s == "" || s[0] == '+' || s[0] == '-' || strings.ContainsAny(s, ",_xX") {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrInvalidAmount
	}
	if neg {
		v = -v
	}
	return v, nil
}

// FormatCurrency renders v with the given symbol, thousands separators and
// two decimals, e.g. FormatCurrency("R$", -1234.5) -> "R$-1,234.50".
// Rounding happens here only; stored totals are never rounded.
func FormatCurrency(symbol string, v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	b.WriteString(symbol)
	if neg && s != "0.00" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
