package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avielle/event-booking-backend/internal/model"
)

func TestEventCreateTxPopulatesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewEventRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO events").
		WillReturnResult(sqlmock.NewResult(77, 1))

	tx, err := db.Begin()
	require.NoError(t, err)

	ev := model.Event{
		UserID:      9,
		Name:        "Garden Wedding",
		Type:        "Wedding",
		Status:      model.EventStatusWishlist,
		TotalPrice:  decimal.NewFromInt(85000),
		BookingType: model.BookingTypeOnline,
	}
	require.NoError(t, repo.CreateTx(context.Background(), tx, &ev))
	assert.Equal(t, uint64(77), ev.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventAddSupplierLinesTxBulkInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewEventRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO event_package_suppliers").
		WillReturnResult(sqlmock.NewResult(1, 2))

	tx, err := db.Begin()
	require.NoError(t, err)

	supplierA, supplierB := uint64(3), uint64(5)
	lines := []model.InclusionLine{
		{RefID: &supplierA, OriginalPrice: decimal.NewFromInt(20000), ModifiedPrice: decimal.NewFromInt(20000)},
		{RefID: &supplierB, OriginalPrice: decimal.NewFromInt(5000), ModifiedPrice: decimal.NewFromInt(4500), IsModified: true},
	}
	require.NoError(t, repo.AddSupplierLinesTx(context.Background(), tx, 11, lines))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventAddSupplierLinesTxEmptyIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewEventRepo(db)

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	require.NoError(t, repo.AddSupplierLinesTx(context.Background(), tx, 11, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventDeleteTxForbiddenForOtherUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewEventRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT userid FROM events").WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"userid"}).AddRow(99))

	tx, err := db.Begin()
	require.NoError(t, err)

	err = repo.DeleteTx(context.Background(), tx, 7, 9)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventDeleteTxMissingEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewEventRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT userid FROM events").WithArgs(uint64(404)).
		WillReturnError(sql.ErrNoRows)

	tx, err := db.Begin()
	require.NoError(t, err)

	err = repo.DeleteTx(context.Background(), tx, 404, 9)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventDeleteTxRemovesChildrenFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewEventRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT userid FROM events").WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"userid"}).AddRow(9))
	for _, fragment := range []string{
		"DELETE ws FROM wishlist_suppliers",
		"DELETE wo FROM wishlist_outfits",
		"DELETE wa FROM wishlist_additional_services",
		"DELETE wv FROM wishlist_venues",
		"DELETE FROM wishlist_packages",
		"DELETE es FROM event_package_suppliers",
		"DELETE eo FROM event_package_outfits",
		"DELETE FROM event_package_configurations",
		"DELETE FROM event_additional_items",
		"DELETE FROM events",
	} {
		mock.ExpectExec(fragment).WithArgs(uint64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	}

	tx, err := db.Begin()
	require.NoError(t, err)

	require.NoError(t, repo.DeleteTx(context.Background(), tx, 7, 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}
