package settlement

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNotFound       = errors.New("settlement not found")
	ErrNotInitialized = errors.New("opening cash float has not been set for this day")
	ErrInvalidInput   = errors.New("invalid input")
)

// DailySettlement reconciles one business day's cash drawer. Amounts are in yen.
type DailySettlement struct {
	Date             time.Time // midnight of the business day in the configured location
	OpeningCashFloat int64
	TotalSalesCash   int64
	ExpectedCash     int64
	ActualCash       *int64
	Discrepancy      *int64 // actual - expected; positive is a surplus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Saved            bool
}

// Settled reports whether counted cash has been recorded.
func (d *DailySettlement) Settled() bool {
	return d.ActualCash != nil
}

func (d *DailySettlement) recompute(sales int64) {
	d.TotalSalesCash = sales
	d.ExpectedCash = d.OpeningCashFloat + sales

	if d.ActualCash != nil {
		diff := *d.ActualCash - d.ExpectedCash
		d.Discrepancy = &diff
	}
}

// Denominations are the yen notes and coins counted at close, largest first.
var Denominations = []int64{10000, 5000, 1000, 500, 100, 50, 10, 5, 1}

// Tally totals a cash count keyed by denomination.
func Tally(counts map[int64]int64) (int64, error) {
	var total int64

	for _, d := range Denominations {
		n := counts[d]
		if n < 0 {
			return 0, fmt.Errorf("%w: count for %d must not be negative", ErrInvalidInput, d)
		}

		if n > (math.MaxInt64-total)/d {
			return 0, fmt.Errorf("%w: cash count is too large", ErrInvalidInput)
		}

		total += n * d
	}

	for d := range counts {
		if !isDenomination(d) {
			return 0, fmt.Errorf("%w: %d is not a yen denomination", ErrInvalidInput, d)
		}
	}

	return total, nil
}

func isDenomination(v int64) bool {
	for _, d := range Denominations {
		if d == v {
			return true
		}
	}

	return false
}
