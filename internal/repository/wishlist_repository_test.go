package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avielle/event-booking-backend/internal/model"
)

func wishlistFixtureRequest() model.WishlistPackageRequest {
	venueID := uint64(3)
	return model.WishlistPackageRequest{
		EventsID:    7,
		PackageName: "Custom Pearl",
		Capacity:    150,
		VenueID:     &venueID,
	}
}

func wishlistParentColumns() []string {
	return []string{
		"events_id", "event_name", "event_type", "event_theme", "event_color",
		"schedule", "start_time", "end_time", "status",
		"wishlist_id", "package_name", "capacity",
		"description", "total_price",
		"additional_capacity_charges", "charge_unit",
		"wp_status",
		"venue_name", "location", "venue_price",
		"gown_package_name", "gown_package_price",
	}
}

func TestWishlistListByUserAssemblesChildren(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewWishlistRepo(db)

	parent := sqlmock.NewRows(wishlistParentColumns()).
		AddRow(7, "Garden Wedding", "Wedding", "Rustic", "Sage",
			"2026-10-14", "14:00:00", "22:00:00", "Wishlist",
			31, "Custom Pearl", 150,
			"full service", "85000.00",
			"500.00", 50,
			"Active",
			"Hillside Pavilion", "Tagaytay", "40000.00",
			nil, nil)
	mock.ExpectQuery("FROM events e").WithArgs(uint64(9)).WillReturnRows(parent)

	outfits := sqlmock.NewRows([]string{"wishlist_id", "outfit_id", "outfit_name", "outfit_type",
		"outfit_color", "outfit_desc", "price", "outfit_img", "status", "remarks"}).
		AddRow(31, 4, "Classic Barong", "Formal", "Ivory", "hand embroidered", "1999.00", "barong.jpg", "Reserved", nil)
	mock.ExpectQuery("wo.price, o.outfit_img").WithArgs(uint64(31)).WillReturnRows(outfits)

	suppliers := sqlmock.NewRows([]string{"wishlist_id", "supplier_id", "name", "service",
		"price", "status", "remarks"}).
		AddRow(31, 12, "Ana Reyes", "Catering", "30000.00", nil, "lunch buffet")
	mock.ExpectQuery("FROM wishlist_suppliers").WithArgs(uint64(31)).WillReturnRows(suppliers)

	services := sqlmock.NewRows([]string{"wishlist_id", "add_service_id", "add_service_name",
		"add_service_description", "price", "status", "remarks"})
	mock.ExpectQuery("FROM wishlist_additional_services").WithArgs(uint64(31)).WillReturnRows(services)

	entries, err := repo.ListByUser(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, uint64(7), e.EventsID)
	assert.Equal(t, uint64(31), e.WishlistID)
	require.NotNil(t, e.StartTime)
	assert.Equal(t, "14:00:00", *e.StartTime)
	require.NotNil(t, e.VenuePrice)
	assert.Equal(t, "40000.00", e.VenuePrice.StringFixed(2))
	assert.Nil(t, e.GownPackageName)

	require.Len(t, e.Outfits, 1)
	assert.Equal(t, "Classic Barong", e.Outfits[0].Name)
	// The line price booked on the wishlist, not the catalog rent price.
	assert.Equal(t, "1999.00", e.Outfits[0].RentPrice.StringFixed(2))
	require.Len(t, e.Suppliers, 1)
	assert.Equal(t, "Ana Reyes", e.Suppliers[0].Name)
	// Empty sub-collections stay non-nil.
	assert.NotNil(t, e.AdditionalServices)
	assert.Empty(t, e.AdditionalServices)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistListByUserEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewWishlistRepo(db)

	mock.ExpectQuery("FROM events e").WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(wishlistParentColumns()))

	entries, err := repo.ListByUser(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistCreatePackageTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewWishlistRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO wishlist_packages").
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectExec("INSERT INTO wishlist_venues").
		WillReturnResult(sqlmock.NewResult(1, 1))

	tx, err := db.Begin()
	require.NoError(t, err)

	req := wishlistFixtureRequest()
	pkg, err := req.Normalize()
	require.NoError(t, err)

	id, err := repo.CreatePackageTx(context.Background(), tx, &pkg)
	require.NoError(t, err)
	assert.Equal(t, uint64(31), id)

	require.NotNil(t, pkg.Selections.Venue)
	err = repo.AddVenueTx(context.Background(), tx, id, pkg.Selections.Venue.VenueID,
		pkg.TotalPrice, pkg.Selections.Venue.Remarks)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
