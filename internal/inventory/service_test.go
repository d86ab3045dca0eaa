package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/till/internal/inventory"
)

func validParams(categoryID uuid.UUID) inventory.ItemParams {
	return inventory.ItemParams{
		Name:         "Coffee",
		CategoryID:   categoryID,
		Quantity:     50,
		Unit:         "cup",
		CostPrice:    150,
		SellingPrice: 300,
		ReorderLevel: 10,
		Supplier:     "Supplier A",
	}
}

func TestService_AddItem(t *testing.T) {
	categoryID := uuid.New()

	type testCase struct {
		name      string
		params    func() inventory.ItemParams
		setupMock func(m *inventory.MockRepository)
		verify    func(t *testing.T, got *inventory.Item)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "WithInitialStock",
			params: func() inventory.ItemParams { return validParams(categoryID) },
			setupMock: func(m *inventory.MockRepository) {
				m.EXPECT().
					CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item *inventory.Item, initial *inventory.Movement) error {
						require.NotNil(t, initial)
						assert.Equal(t, inventory.MovementReceive, initial.Type)
						assert.Equal(t, int64(50), initial.Quantity)
						assert.Equal(t, "initial stock", initial.Reason)
						assert.Equal(t, "aiko", initial.Actor)

						item.ID = uuid.New()

						return nil
					})
			},
			verify: func(t *testing.T, got *inventory.Item) {
				assert.NotEqual(t, uuid.Nil, got.ID)
				assert.Equal(t, int64(50), got.Quantity)
			},
		},
		{
			name: "ZeroStockSkipsMovement",
			params: func() inventory.ItemParams {
				p := validParams(categoryID)
				p.Quantity = 0
				p.Name = "  Matcha Latte  "

				return p
			},
			setupMock: func(m *inventory.MockRepository) {
				m.EXPECT().
					CreateItem(gomock.Any(), gomock.Any(), nil).
					DoAndReturn(func(_ context.Context, item *inventory.Item, _ *inventory.Movement) error {
						assert.Equal(t, "Matcha Latte", item.Name)
						return nil
					})
			},
		},
		{
			name: "ExpiryTruncatedToDate",
			params: func() inventory.ItemParams {
				p := validParams(categoryID)
				p.ExpiryDate = new(time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC))

				return p
			},
			setupMock: func(m *inventory.MockRepository) {
				m.EXPECT().CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, got *inventory.Item) {
				require.NotNil(t, got.ExpiryDate)
				assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), *got.ExpiryDate)
			},
		},
		{
			name: "MissingName",
			params: func() inventory.ItemParams {
				p := validParams(categoryID)
				p.Name = "   "

				return p
			},
			wantErr: inventory.ErrInvalidInput,
		},
		{
			name: "NegativePrice",
			params: func() inventory.ItemParams {
				p := validParams(categoryID)
				p.SellingPrice = -1

				return p
			},
			wantErr: inventory.ErrInvalidInput,
		},
		{
			name: "MissingCategory",
			params: func() inventory.ItemParams {
				return validParams(uuid.Nil)
			},
			wantErr: inventory.ErrInvalidInput,
		},
		{
			name:   "Duplicate",
			params: func() inventory.ItemParams { return validParams(categoryID) },
			setupMock: func(m *inventory.MockRepository) {
				m.EXPECT().
					CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(inventory.ErrDuplicateItem)
			},
			wantErr: inventory.ErrDuplicateItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := inventory.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := inventory.NewService(repo)
			got, err := svc.AddItem(context.Background(), tt.params(), "aiko")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestService_AddItem_ValidationMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := inventory.NewService(inventory.NewMockRepository(ctrl))

	_, err := svc.AddItem(context.Background(), inventory.ItemParams{Quantity: -2}, "")
	require.ErrorIs(t, err, inventory.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "unit is required")
	assert.Contains(t, err.Error(), "quantity must not be negative")
	assert.Contains(t, err.Error(), "category_id is required")
}

func TestService_UpdateItem(t *testing.T) {
	itemID := uuid.New()
	categoryID := uuid.New()

	current := func() *inventory.Item {
		return &inventory.Item{ID: itemID, Name: "Coffee", CategoryID: categoryID, Quantity: 12, ReorderLevel: 10, Unit: "cup"}
	}

	t.Run("QuantityChangeIsAdjusted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := inventory.NewMockRepository(ctrl)
		tx := inventory.NewMockMovementTx(ctrl)

		repo.EXPECT().BeginMovement(gomock.Any(), itemID).Return(tx, nil)
		tx.EXPECT().Item().Return(current())
		tx.EXPECT().
			UpdateItem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, it *inventory.Item) error {
				assert.Equal(t, int64(5), it.Quantity)
				assert.Equal(t, int64(320), it.SellingPrice)

				return nil
			})
		tx.EXPECT().
			InsertMovement(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *inventory.Movement) error {
				assert.Equal(t, inventory.MovementDispose, m.Type)
				assert.Equal(t, int64(7), m.Quantity)
				assert.Equal(t, "ken", m.Actor)

				return nil
			})
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil)

		params := validParams(categoryID)
		params.Quantity = 5
		params.SellingPrice = 320

		got, err := inventory.NewService(repo).UpdateItem(context.Background(), itemID, params, "ken")
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.Quantity)
	})

	t.Run("SameQuantityNoMovement", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := inventory.NewMockRepository(ctrl)
		tx := inventory.NewMockMovementTx(ctrl)

		repo.EXPECT().BeginMovement(gomock.Any(), itemID).Return(tx, nil)
		tx.EXPECT().Item().Return(current())
		tx.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil)
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil)

		params := validParams(categoryID)
		params.Quantity = 12
		params.Name = "House Coffee"

		got, err := inventory.NewService(repo).UpdateItem(context.Background(), itemID, params, "")
		require.NoError(t, err)
		assert.Equal(t, "House Coffee", got.Name)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := inventory.NewMockRepository(ctrl)
		tx := inventory.NewMockMovementTx(ctrl)

		repo.EXPECT().BeginMovement(gomock.Any(), itemID).Return(tx, nil)
		tx.EXPECT().Item().Return(current())
		tx.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(inventory.ErrDuplicateItem)
		tx.EXPECT().Rollback().Return(nil)

		params := validParams(categoryID)
		params.Quantity = 12

		_, err := inventory.NewService(repo).UpdateItem(context.Background(), itemID, params, "")
		assert.ErrorIs(t, err, inventory.ErrDuplicateItem)
	})

	t.Run("InvalidBeforeLock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		params := validParams(categoryID)
		params.Unit = ""

		_, err := inventory.NewService(inventory.NewMockRepository(ctrl)).UpdateItem(context.Background(), itemID, params, "")
		assert.ErrorIs(t, err, inventory.ErrInvalidInput)
	})
}

func TestService_ListItems(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC) }

	type testCase struct {
		name      string
		call      func(svc *inventory.Service) ([]*inventory.Item, error)
		setupMock func(m *inventory.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "LowStock",
			call: func(svc *inventory.Service) ([]*inventory.Item, error) { return svc.LowStock(context.Background()) },
			setupMock: func(m *inventory.MockRepository) {
				m.EXPECT().
					ListItems(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, f inventory.ListFilter) ([]*inventory.Item, error) {
						require.NotNil(t, f.Status)
						assert.Equal(t, inventory.StatusLowStock, *f.Status)

						return []*inventory.Item{{Name: "Shortcake"}}, nil
					})
			},
		},
		{
			name: "ExpiringUsesSevenDayWindow",
			call: func(svc *inventory.Service) ([]*inventory.Item, error) { return svc.ExpiringSoon(context.Background()) },
			setupMock: func(m *inventory.MockRepository) {
				m.EXPECT().
					ListItems(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, f inventory.ListFilter) ([]*inventory.Item, error) {
						assert.Equal(t, inventory.StatusExpiring, *f.Status)
						assert.Equal(t, time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC), f.ExpiringBy)

						return nil, nil
					})
			},
		},
		{
			name: "UnknownStatus",
			call: func(svc *inventory.Service) ([]*inventory.Item, error) {
				return svc.ListItems(context.Background(), inventory.ListFilter{Status: new(inventory.Status("sold_out"))})
			},
			wantErr: inventory.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := inventory.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			_, err := tt.call(inventory.NewService(repo, inventory.WithClock(clock), inventory.WithLocation(time.UTC)))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_RecentMovements(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "Default", limit: 0, wantLimit: inventory.DefaultMovementLimit},
		{name: "Explicit", limit: 5, wantLimit: 5},
		{name: "Capped", limit: 10_000, wantLimit: inventory.MaxMovementLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := inventory.NewMockRepository(ctrl)
			repo.EXPECT().
				ListMovements(gomock.Any(), inventory.MovementFilter{Limit: tt.wantLimit}).
				Return([]*inventory.Movement{}, nil)

			_, err := inventory.NewService(repo).RecentMovements(context.Background(), tt.limit)
			assert.NoError(t, err)
		})
	}
}

func TestService_DeleteItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := inventory.NewMockRepository(ctrl)
	repo.EXPECT().DeleteItem(gomock.Any(), id).Return(inventory.ErrNotFound)

	err := inventory.NewService(repo).DeleteItem(context.Background(), id)
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := func() time.Time { return time.Date(2026, 1, 30, 9, 0, 0, 0, time.UTC) }

	repo := inventory.NewMockRepository(ctrl)
	repo.EXPECT().
		Summary(gomock.Any(), time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)).
		Return(&inventory.Summary{TotalItems: 5, LowStockItems: 1}, nil)

	got, err := inventory.NewService(repo, inventory.WithClock(clock), inventory.WithLocation(time.UTC)).Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.TotalItems)
}

func TestService_ExpiryWindowFollowsBusinessDay(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)

	// 02:30 on 2026-05-10 in Tokyo, still 2026-05-09 in UTC.
	clock := func() time.Time { return time.Date(2026, 5, 9, 17, 30, 0, 0, time.UTC) }

	tests := []struct {
		name string
		loc  *time.Location
		want time.Time
	}{
		{name: "Tokyo", loc: jst, want: time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC)},
		{name: "UTC", loc: time.UTC, want: time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := inventory.NewMockRepository(ctrl)
			repo.EXPECT().
				ListItems(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, f inventory.ListFilter) ([]*inventory.Item, error) {
					assert.Equal(t, tt.want, f.ExpiringBy)
					return nil, nil
				})
			repo.EXPECT().Summary(gomock.Any(), tt.want).Return(&inventory.Summary{}, nil)

			svc := inventory.NewService(repo, inventory.WithClock(clock), inventory.WithLocation(tt.loc))

			_, err := svc.ExpiringSoon(context.Background())
			require.NoError(t, err)

			_, err = svc.Summary(context.Background())
			require.NoError(t, err)
		})
	}
}

func TestItem_Helpers(t *testing.T) {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	item := &inventory.Item{Quantity: 5, ReorderLevel: 5}
	assert.True(t, item.BelowReorder())
	assert.False(t, item.ExpiresBy(day))

	item.ExpiryDate = new(day.AddDate(0, 0, 1))
	assert.False(t, item.ExpiresBy(day))

	item.ExpiryDate = new(day)
	assert.True(t, item.ExpiresBy(day))

	assert.Equal(t, int64(-3), (&inventory.Movement{Type: inventory.MovementIssue, Quantity: 3}).Delta())
	assert.Equal(t, int64(3), (&inventory.Movement{Type: inventory.MovementReceive, Quantity: 3}).Delta())
	assert.True(t, errors.Is(inventory.ErrInvalidQuantity, inventory.ErrInvalidInput))
}
