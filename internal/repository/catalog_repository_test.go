package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avielle/event-booking-backend/internal/pricing"
)

func TestCatalogPriceVenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCatalogRepo(db)

	mock.ExpectQuery("SELECT venue_price FROM venues").WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"venue_price"}).AddRow("40000.00"))

	price, err := repo.CatalogPrice(context.Background(), pricing.KindVenue, 4)
	require.NoError(t, err)
	assert.Equal(t, "40000.00", price.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogPriceNullColumnResolvesToZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCatalogRepo(db)

	mock.ExpectQuery("SELECT venue_price FROM venues").WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"venue_price"}).AddRow(nil))

	_, err = repo.CatalogPrice(context.Background(), pricing.KindVenue, 5)
	assert.ErrorIs(t, err, pricing.ErrNotPriced)

	mock.ExpectQuery("SELECT venue_price FROM venues").WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"venue_price"}).AddRow(nil))

	price, err := pricing.NewResolver(repo).Resolve(context.Background(), nil, pricing.KindVenue, 5)
	require.NoError(t, err)
	assert.True(t, price.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogPriceMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCatalogRepo(db)

	mock.ExpectQuery("SELECT rent_price FROM outfits").WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"rent_price"}))

	_, err = repo.CatalogPrice(context.Background(), pricing.KindOutfit, 99)
	assert.ErrorIs(t, err, pricing.ErrNotPriced)
}

func TestCatalogPriceUnknownKind(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCatalogRepo(db)

	_, err = repo.CatalogPrice(context.Background(), pricing.Kind("caterer"), 1)
	assert.ErrorIs(t, err, pricing.ErrNotPriced)
}

func TestListActiveSuppliersPopulatesSocialMedia(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCatalogRepo(db)

	suppliers := sqlmock.NewRows([]string{"supplier_id", "firstname", "lastname", "service", "price",
		"email", "contactnumber", "address", "user_img"}).
		AddRow(12, "Ana", "Reyes", "Catering", "30000.00", "ana@example.com", "+639170000001", "Quezon City", nil).
		AddRow(13, "Ben", "Cruz", "Photography", "18000.00", "ben@example.com", "+639170000002", "Makati", nil)
	mock.ExpectQuery("ORDER BY s.service, u.lastname").WillReturnRows(suppliers)

	social := sqlmock.NewRows([]string{"supplier_id", "platform", "handle", "url"}).
		AddRow(12, "Instagram", "@anareyescatering", "https://instagram.com/anareyescatering")
	mock.ExpectQuery("FROM supplier_social_media").WithArgs(uint64(12), uint64(13)).WillReturnRows(social)

	got, err := repo.ListActiveSuppliers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ana Reyes", got[0].Name)
	require.Len(t, got[0].SocialMedia, 1)
	assert.Equal(t, "Instagram", got[0].SocialMedia[0].Platform)
	// The second supplier has no links but the slice stays non-nil.
	assert.NotNil(t, got[1].SocialMedia)
	assert.Empty(t, got[1].SocialMedia)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedEventTypesSkipsWhenPopulated(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCatalogRepo(db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	require.NoError(t, repo.SeedEventTypes(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
