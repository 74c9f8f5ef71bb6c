package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"

	"sneaksync/internal/model"
	"sneaksync/internal/repository"
)

func newListingCmd(slug string) CreateListingCmd {
	product := model.Product{
		Title:     "Air Jordan 1 Chicago",
		Brand:     "Jordan",
		Model:     "AJ1",
		Condition: model.ConditionNew,
		SizeVariants: datatypes.NewJSONType([]model.SizeVariant{
			{Size: "10", SKU: "AJ1-10", Price: 300, Currency: "USD", InventoryQuantity: 1},
		}),
	}
	if slug != "" {
		product.Slug = &slug
	}
	return CreateListingCmd{
		SellerID:    "seller-1",
		Product:     product,
		Price:       decimal.NewFromInt(120),
		ListingType: model.ListingTypeFixedPrice,
	}
}

func TestListingService_CreateListing(t *testing.T) {
	store := setupStore(t)
	svc := NewListingService(store, nopLogger())
	ctx := context.Background()

	created, err := svc.CreateListing(ctx, newListingCmd("aj1-chicago"))
	require.NoError(t, err)
	assert.False(t, created.ListingID.IsZero())
	assert.False(t, created.ProductID.IsZero())

	listing, err := store.Listings().GetByID(ctx, created.ListingID)
	require.NoError(t, err)
	assert.Equal(t, model.ListingStatusActive, listing.Status)
	assert.Equal(t, model.DefaultCurrency, listing.Currency)
	assert.Equal(t, created.ProductID, listing.ProductID)
	assert.True(t, listing.Price.Equal(decimal.NewFromInt(120)))
}

func TestListingService_CreateListingReusesSlug(t *testing.T) {
	store := setupStore(t)
	svc := NewListingService(store, nopLogger())
	ctx := context.Background()

	first, err := svc.CreateListing(ctx, newListingCmd("aj1-chicago"))
	require.NoError(t, err)

	cmd := newListingCmd("aj1-chicago")
	cmd.Product.Title = "ignored title"
	cmd.Currency = "EUR"
	second, err := svc.CreateListing(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, first.ProductID, second.ProductID)
	assert.NotEqual(t, first.ListingID, second.ListingID)

	total, err := store.Products().Count(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	product, err := store.Products().GetByID(ctx, first.ProductID)
	require.NoError(t, err)
	assert.Equal(t, "Air Jordan 1 Chicago", product.Title)

	listing, err := store.Listings().GetByID(ctx, second.ListingID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", listing.Currency)
}

func TestListingService_CreateListingWithoutSlug(t *testing.T) {
	store := setupStore(t)
	svc := NewListingService(store, nopLogger())
	ctx := context.Background()

	first, err := svc.CreateListing(ctx, newListingCmd(""))
	require.NoError(t, err)
	second, err := svc.CreateListing(ctx, newListingCmd(""))
	require.NoError(t, err)

	assert.NotEqual(t, first.ProductID, second.ProductID)
}

func TestListingService_CreateListingValidation(t *testing.T) {
	svc := NewListingService(newMockStore(t).store, nopLogger())

	tests := []struct {
		name string
		edit func(cmd *CreateListingCmd)
	}{
		{"负价格", func(cmd *CreateListingCmd) { cmd.Price = decimal.NewFromInt(-1) }},
		{"未知挂牌方式", func(cmd *CreateListingCmd) { cmd.ListingType = "barter" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newListingCmd("")
			tt.edit(&cmd)
			_, err := svc.CreateListing(context.Background(), cmd)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestListingService_CreateListingSlugRace(t *testing.T) {
	m := newMockStore(t)
	svc := NewListingService(m.store, nopLogger())
	ctx := context.Background()
	winner := &model.Product{BaseModel: model.BaseModel{ID: model.NewID()}}

	gomock.InOrder(
		m.products.EXPECT().GetBySlug(gomock.Any(), "aj1-chicago").Return(nil, repository.ErrNotFound),
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicate),
		m.products.EXPECT().GetBySlug(gomock.Any(), "aj1-chicago").Return(winner, nil),
	)
	m.listings.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *model.Listing) error {
			assert.Equal(t, winner.ID, l.ProductID)
			l.ID = model.NewID()
			return nil
		})

	created, err := svc.CreateListing(ctx, newListingCmd("aj1-chicago"))
	require.NoError(t, err)
	assert.Equal(t, winner.ID, created.ProductID)
}

func TestListingService_CreateListingStoreFailure(t *testing.T) {
	m := newMockStore(t)
	svc := NewListingService(m.store, nopLogger())
	boom := errors.New("connection reset")

	m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.listings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(boom)

	_, err := svc.CreateListing(context.Background(), newListingCmd(""))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "Internal server error", Message(err))
}

func TestListingService_GetListing(t *testing.T) {
	store := setupStore(t)
	svc := NewListingService(store, nopLogger())
	ctx := context.Background()
	listing := seedListing(t, store, "99.50", model.ListingStatusActive)

	got, err := svc.GetListing(ctx, listing.ID.String())
	require.NoError(t, err)
	assert.Equal(t, listing.ID, got.ID)

	for _, raw := range []string{"not-an-id", "", model.NewID().String()} {
		_, err := svc.GetListing(ctx, raw)
		assert.ErrorIs(t, err, ErrNotFound, raw)
		assert.Equal(t, "Listing not found", Message(err))
	}
}

func TestListingService_MarkSold(t *testing.T) {
	store := setupStore(t)
	svc := NewListingService(store, nopLogger())
	ctx := context.Background()
	listing := seedListing(t, store, "100", model.ListingStatusActive)

	require.NoError(t, svc.MarkSold(ctx, store, listing.ID))

	err := svc.MarkSold(ctx, store, listing.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Listing already sold", Message(err))
}
