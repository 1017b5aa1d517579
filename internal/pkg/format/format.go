package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var locale atomic.Value

func init() {
	locale.Store(language.Spanish)
}

// SetLocale changes the locale used for numbers and casing. Unknown tags keep the current one.
func SetLocale(tag string) error {
	t, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("format: invalid locale %q: %w", tag, err)
	}
	locale.Store(t)
	return nil
}

func current() language.Tag {
	return locale.Load().(language.Tag)
}

// Number renders v as a localized, grouped, non-negative integer.
// Printers and casers are stateful, so each call builds its own.
func Number(v float64) string {
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	return message.NewPrinter(current()).Sprintf("%d", int64(math.Round(v)))
}

// Price renders a currency-less price prefixed with "$".
func Price(v float64) string {
	return "$" + Number(v)
}

// PriceAbbrev is the short marker label: "$NK" from 1000 up, the exact value
// with "USD" below.
func PriceAbbrev(v float64) string {
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	if v >= 1000 {
		return fmt.Sprintf("$%.0fK", math.Round(v/1000))
	}
	return "$" + strconv.FormatFloat(v, 'f', -1, 64) + " USD"
}

// Area renders a surface with its unit, trimming a zero fraction ("120 m²", "85.5 m²").
func Area(v float64, unit string) string {
	return trimFloat(v) + " " + unit
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return strings.TrimRight(fmt.Sprintf("%.2f", v), "0")
}

// TitleCase turns "en alquiler" or "EN VENTA" into "En Alquiler" / "En Venta",
// collapsing repeated spaces.
func TitleCase(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return cases.Title(current()).String(strings.Join(fields, " "))
}

// Upper is used for category badges.
func Upper(s string) string {
	return cases.Upper(current()).String(s)
}

var (
	endsVowel = regexp.MustCompile(`(?i)[aeiouáéíóú]$`)
	endsZ     = regexp.MustCompile(`(?i)z$`)
)

// Pluralize is a simple Spanish pluralizer for group headings ("Casa" → "Casas",
// "Local" → "Locales", "Otros" stays).
func Pluralize(s string) string {
	if s == "" || strings.EqualFold(s, "otros") {
		return s
	}
	switch {
	case endsVowel.MatchString(s):
		return s + "s"
	case endsZ.MatchString(s):
		return s[:len(s)-1] + "ces"
	default:
		return s + "es"
	}
}

// Digits keeps only ASCII digits ("+591 777-12345" → "59177712345").
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
