package settlement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settlement
type Repository interface {
	GetSettlement(ctx context.Context, day time.Time) (*DailySettlement, error)
	// SaveOpeningFloat upserts the day's float and sales total. A recorded actual amount is
	// left untouched and its discrepancy recomputed.
	SaveOpeningFloat(ctx context.Context, day time.Time, amount, sales int64) (*DailySettlement, error)
	// SaveActualCash records counted cash on an existing row, or returns ErrNotFound.
	SaveActualCash(ctx context.Context, day time.Time, actual, sales int64) (*DailySettlement, error)
	// SalesTotal sums sale totals created in [from, to).
	SalesTotal(ctx context.Context, from, to time.Time) (int64, error)
}

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

type Option func(*Service)

// WithLocation sets the time zone that decides where a business day starts and ends.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, loc: time.Local, now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Today is the current business day.
func (s *Service) Today() time.Time {
	return s.Day(s.now())
}

// Day truncates t to midnight of its calendar date in the service location.
func (s *Service) Day(t time.Time) time.Time {
	y, m, d := t.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// ParseDay accepts YYYY-MM-DD or "today".
func (s *Service) ParseDay(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "today") {
		return s.Today(), nil
	}

	t, err := time.ParseInLocation(time.DateOnly, v, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	return t, nil
}

// Get returns the stored settlement for the day, or an unsaved snapshot with no float
// and the live sales total.
func (s *Service) Get(ctx context.Context, date time.Time) (*DailySettlement, error) {
	day := s.Day(date)

	sales, err := s.salesTotal(ctx, day)
	if err != nil {
		return nil, err
	}

	st, err := s.repo.GetSettlement(ctx, day)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("getting settlement: %w", err)
		}

		st = &DailySettlement{Date: day}
	} else {
		st.Saved = true
	}

	st.Date = day
	st.recompute(sales)

	return st, nil
}

// SetOpeningFloat records the day's starting cash. A previously counted actual amount is
// kept and its discrepancy recomputed.
func (s *Service) SetOpeningFloat(ctx context.Context, date time.Time, amount int64) (*DailySettlement, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: opening float must not be negative", ErrInvalidInput)
	}

	day := s.Day(date)

	sales, err := s.salesTotal(ctx, day)
	if err != nil {
		return nil, err
	}

	st, err := s.repo.SaveOpeningFloat(ctx, day, amount, sales)
	if err != nil {
		return nil, fmt.Errorf("saving opening float: %w", err)
	}

	st.Date = day
	st.Saved = true

	return st, nil
}

// Settle records counted cash against the expected amount.
func (s *Service) Settle(ctx context.Context, date time.Time, actual int64) (*DailySettlement, error) {
	if actual < 0 {
		return nil, fmt.Errorf("%w: actual cash must not be negative", ErrInvalidInput)
	}

	day := s.Day(date)

	sales, err := s.salesTotal(ctx, day)
	if err != nil {
		return nil, err
	}

	st, err := s.repo.SaveActualCash(ctx, day, actual, sales)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotInitialized
		}

		return nil, fmt.Errorf("saving actual cash: %w", err)
	}

	st.Date = day
	st.Saved = true

	return st, nil
}

func (s *Service) salesTotal(ctx context.Context, day time.Time) (int64, error) {
	total, err := s.repo.SalesTotal(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return 0, fmt.Errorf("summing sales: %w", err)
	}

	return total, nil
}
