package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	GetSetting(ctx context.Context, key Key) (*Setting, error)
	UpsertSetting(ctx context.Context, key Key, value string) error
	ListSettings(ctx context.Context) ([]Setting, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored value for key, or its default when nothing was stored.
func (s *Service) Get(ctx context.Context, key Key) (string, error) {
	def, ok := defaults[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	setting, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return def, nil
		}

		return "", fmt.Errorf("getting setting %s: %w", key, err)
	}

	return setting.Value, nil
}

// Set validates and stores a value. The stored form is normalised, e.g. "08" becomes "8".
func (s *Service) Set(ctx context.Context, key Key, value string) (string, error) {
	normalised, err := normalise(key, value)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpsertSetting(ctx, key, normalised); err != nil {
		return "", fmt.Errorf("saving setting %s: %w", key, err)
	}

	return normalised, nil
}

// All lists the effective value of every known key.
func (s *Service) All(ctx context.Context) ([]Setting, error) {
	stored, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}

	byKey := make(map[Key]Setting, len(stored))
	for _, st := range stored {
		byKey[st.Key] = st
	}

	out := make([]Setting, 0, len(defaults))

	for _, key := range Keys() {
		if st, ok := byKey[key]; ok {
			out = append(out, st)
			continue
		}

		out = append(out, Setting{Key: key, Value: defaults[key]})
	}

	return out, nil
}

// TaxRate returns the sales tax as a percentage, e.g. 10 for 10%.
func (s *Service) TaxRate(ctx context.Context) (decimal.Decimal, error) {
	v, err := s.Get(ctx, KeyTaxRate)
	if err != nil {
		return decimal.Zero, err
	}

	rate, err := parseTaxRate(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stored tax rate %q: %w", v, err)
	}

	return rate, nil
}

// LowStockThreshold returns the quantity at or below which a sold item is reported as low.
func (s *Service) LowStockThreshold(ctx context.Context) (int64, error) {
	v, err := s.Get(ctx, KeyLowStockThreshold)
	if err != nil {
		return 0, err
	}

	n, err := parseThreshold(v)
	if err != nil {
		return 0, fmt.Errorf("stored low stock threshold %q: %w", v, err)
	}

	return n, nil
}

func normalise(key Key, value string) (string, error) {
	value = strings.TrimSpace(value)

	switch key {
	case KeyTaxRate:
		rate, err := parseTaxRate(value)
		if err != nil {
			return "", err
		}

		// Sales record the rate as NUMERIC(5,2).
		if !rate.Equal(rate.Round(2)) {
			return "", fmt.Errorf("%w: tax rate allows at most two decimal places", ErrInvalidValue)
		}

		return rate.String(), nil
	case KeyLowStockThreshold:
		n, err := parseThreshold(value)
		if err != nil {
			return "", err
		}

		return strconv.FormatInt(n, 10), nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

var hundred = decimal.NewFromInt(100)

func parseTaxRate(v string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: tax rate must be a number", ErrInvalidValue)
	}

	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return decimal.Zero, fmt.Errorf("%w: tax rate must be between 0 and 100", ErrInvalidValue)
	}

	return rate, nil
}

func parseThreshold(v string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: low stock threshold must be a whole number", ErrInvalidValue)
	}

	if n < 0 {
		return 0, fmt.Errorf("%w: low stock threshold must not be negative", ErrInvalidValue)
	}

	return n, nil
}
