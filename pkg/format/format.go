// Package format renders numeric and masked field values for display.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/dukex/fluxo/pkg/models"
)

const (
	previewNumber = 1234.56
	percentSign   = "%"
)

// Number renders value with the separators, decimals and currency symbol of
// cfg. Masked subtypes render the integer digits through their mask.
func Number(value float64, cfg models.NumericFormat) string {
	if cfg.Subtype.IsMasked() {
		return Mask(strconv.FormatFloat(math.Abs(math.Trunc(value)), 'f', 0, 64), cfg)
	}

	decimals := cfg.Decimals
	if cfg.Subtype == models.SubtypeInteger || decimals < 0 {
		decimals = 0
	}

	out := group(math.Abs(value), decimals, cfg.DecimalSeparator, cfg.ThousandsSeparator)

	switch cfg.Subtype {
	case models.SubtypeCurrency:
		symbol := cfg.CurrencySymbol
		if symbol == "" {
			symbol = cfg.Currency
		}

		if symbol != "" {
			if cfg.SymbolPosition == models.SymbolAfter {
				out = out + " " + symbol
			} else {
				out = symbol + " " + out
			}
		}
	case models.SubtypePercentage:
		out += percentSign
	}

	if value < 0 && strings.ContainsAny(out, "123456789") {
		out = "-" + out
	}

	return out
}

func group(value float64, decimals int, decimalSep, thousandsSep string) string {
	if decimalSep == "" {
		decimalSep = ","
	}

	fixed := strconv.FormatFloat(value, 'f', decimals, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder

	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSep)
		}

		b.WriteRune(digit)
	}

	if fracPart != "" {
		b.WriteString(decimalSep)
		b.WriteString(fracPart)
	}

	return b.String()
}

// Mask places the digits of input into the slots of the mask, where every
// '0' in the mask is a digit slot. Non-digits in input are ignored and the
// output stops at the last filled slot.
func Mask(input string, cfg models.NumericFormat) string {
	mask := cfg.Mask
	if mask == "" {
		mask = models.CanonicalMask(cfg.Subtype)
	}

	digits := Digits(input)
	if mask == "" {
		return digits
	}

	var b strings.Builder

	next := 0

	for _, slot := range mask {
		if next >= len(digits) {
			break
		}

		if slot == '0' {
			b.WriteByte(digits[next])
			next++

			continue
		}

		b.WriteRune(slot)
	}

	return b.String()
}

// Digits strips everything but ASCII digits.
func Digits(input string) string {
	var b strings.Builder

	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Preview renders the sample shown next to the formatting options of a field.
func Preview(cfg models.NumericFormat) string {
	if cfg.Subtype.IsMasked() {
		mask := cfg.Mask
		if mask == "" {
			mask = models.CanonicalMask(cfg.Subtype)
		}

		return Mask(strings.Repeat("1234567890", 2)[:strings.Count(mask, "0")], cfg)
	}

	return Number(previewNumber, cfg)
}

// Parse reads a displayed number back using the separators of cfg.
func Parse(display string, cfg models.NumericFormat) (float64, error) {
	s := strings.TrimSpace(display)
	s = strings.TrimSuffix(s, percentSign)

	for _, symbol := range []string{cfg.CurrencySymbol, cfg.Currency} {
		if symbol != "" {
			s = strings.ReplaceAll(s, symbol, "")
		}
	}

	if cfg.ThousandsSeparator != "" {
		s = strings.ReplaceAll(s, cfg.ThousandsSeparator, "")
	}

	if cfg.DecimalSeparator != "" && cfg.DecimalSeparator != "." {
		s = strings.ReplaceAll(s, cfg.DecimalSeparator, ".")
	}

	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
