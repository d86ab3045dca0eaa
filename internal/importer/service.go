package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/till/internal/importer/catalog"
	"github.com/MrJamesThe3rd/till/internal/inventory"
)

//go:generate mockgen -source=service.go -destination=catalog_mock.go -package=importer
type Catalog interface {
	Categories(ctx context.Context) ([]*inventory.Category, error)
	AddItem(ctx context.Context, params inventory.ItemParams, actor string) (*inventory.Item, error)
}

type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Import adds every readable line of a catalog file as a new item. Each line is stored on
// its own; a failing line is reported and the rest continue.
func (s *Service) Import(ctx context.Context, r io.Reader, actor string) (*Result, error) {
	file, err := catalog.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventory.ErrInvalidInput, err)
	}

	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	idx := newCategoryIndex(categories)
	result := &Result{Charset: file.Charset, Profile: file.Profile}

	for _, row := range file.Rows {
		fail := func(reason string) {
			result.Failed = append(result.Failed, RowError{Line: row.Line, Name: row.Item.Name, Reason: reason})
		}

		if row.Err != nil {
			fail(row.Err.Error())
			continue
		}

		categoryID, ok := idx.lookup(row.Category)
		if !ok {
			fail(fmt.Sprintf("unknown category %q", row.Category))
			continue
		}

		params := row.Item
		params.CategoryID = categoryID

		item, err := s.catalog.AddItem(ctx, params, actor)
		if err != nil {
			fail(err.Error())
			continue
		}

		result.Created = append(result.Created, item)
	}

	slog.Info("catalog imported",
		"charset", result.Charset,
		"profile", result.Profile,
		"created", len(result.Created),
		"failed", len(result.Failed),
	)

	return result, nil
}
