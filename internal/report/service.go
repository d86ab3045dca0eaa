package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/inventory"
	"github.com/MrJamesThe3rd/till/internal/settlement"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=report
type Sales interface {
	Sales(ctx context.Context, from, to time.Time) ([]*checkout.Sale, error)
}

type Ledger interface {
	Movements(ctx context.Context, filter inventory.MovementFilter) ([]*inventory.Movement, error)
}

type Settlements interface {
	Get(ctx context.Context, date time.Time) (*settlement.DailySettlement, error)
}

type Service struct {
	sales       Sales
	ledger      Ledger
	settlements Settlements
}

func NewService(sales Sales, ledger Ledger, settlements Settlements) *Service {
	return &Service{sales: sales, ledger: ledger, settlements: settlements}
}

// Daily collects the sales, stock movements and cash settlement of the business day containing date.
func (s *Service) Daily(ctx context.Context, date time.Time) (*Daily, error) {
	st, err := s.settlements.Get(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("getting settlement: %w", err)
	}

	from := st.Date
	to := from.AddDate(0, 0, 1)

	sales, err := s.sales.Sales(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}

	movements, err := s.ledger.Movements(ctx, inventory.MovementFilter{Since: &from, Until: &to})
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}

	slices.Reverse(movements)

	return &Daily{Date: from, Sales: sales, Movements: movements, Settlement: st}, nil
}

// Export writes the day's workbook into dir and returns its path.
func (s *Service) Export(ctx context.Context, date time.Time, dir string) (string, error) {
	daily, err := s.Daily(ctx, date)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, daily.Filename())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := saveWorkbook(f, daily); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	return path, nil
}

// saveWorkbook writes the workbook and closes w, reporting a failed close as a failed write.
func saveWorkbook(w io.WriteCloser, daily *Daily) error {
	if err := daily.WriteXLSX(w); err != nil {
		_ = w.Close()
		return err
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}

	return nil
}
