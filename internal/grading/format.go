package grading

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const absentDisplay = "-"

// FormatMark renders a mark with one decimal and a decimal comma. Further
// decimals are truncated, never rounded: 4.95 is below a passing 5.0 and
// prints as "4,9".
func FormatMark(m Mark) string {
	v, ok := m.Float()
	if !ok {
		return absentDisplay
	}
	return message.NewPrinter(language.BrazilianPortuguese).Sprintf("%.1f", truncateTenths(v))
}

// truncateTenths drops everything past the first decimal. The epsilon keeps
// values such as 5.7, stored as 5.6999..., at their written tenth.
func truncateTenths(v float64) float64 {
	return math.Floor(v*10+1e-9) / 10
}

// FormatConcept renders an early-childhood mark as its concept code.
func FormatConcept(m Mark) string {
	c, ok := ConceptFor(m)
	if !ok {
		return absentDisplay
	}
	return string(c)
}
