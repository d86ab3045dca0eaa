package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/width"
)

var errNegative = errors.New("must not be negative")

var currencyMarks = strings.NewReplacer("¥", "", "円", "", ",", "", " ", "")

// parseYen reads a price such as "1,200", "¥300" or "３００円" into whole yen,
// rounding fractional amounts half up.
func parseYen(s string) (int64, error) {
	clean := currencyMarks.Replace(width.Narrow.String(s))

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%q is not an amount", s)
	}

	if d.IsNegative() {
		return 0, errNegative
	}

	return d.Round(0).IntPart(), nil
}

// parseCount reads a whole, non-negative count.
func parseCount(s string) (int64, error) {
	clean := currencyMarks.Replace(width.Narrow.String(s))

	d, err := decimal.NewFromString(clean)
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}

	if d.IsNegative() {
		return 0, errNegative
	}

	return d.IntPart(), nil
}

var dateLayouts = []string{time.DateOnly, "2006/01/02", "2006/1/2", "2006.01.02", "20060102"}

// parseDate reads a calendar date; the result is midnight UTC.
func parseDate(s string) (time.Time, error) {
	clean := width.Narrow.String(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%q is not a date (use YYYY-MM-DD)", s)
}
