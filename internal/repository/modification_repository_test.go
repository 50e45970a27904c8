package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordModificationReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewModificationRepo(db)

	mock.ExpectExec("INSERT INTO modified_event_services").
		WillReturnResult(sqlmock.NewResult(55, 1))

	orig := decimal.NewFromInt(20000)
	mod := decimal.NewFromInt(18000)
	remarks := "negotiated discount"
	id, err := repo.RecordModification(context.Background(), 7, 3, "price_change", &orig, &mod, &remarks)
	require.NoError(t, err)
	assert.Equal(t, uint64(55), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordCustomizationReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewModificationRepo(db)

	mock.ExpectExec("INSERT INTO event_service_customizations").
		WillReturnResult(sqlmock.NewResult(8, 1))

	details := "gold table runners"
	id, err := repo.RecordCustomization(context.Background(), 7, 3, nil, &details)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEventReturnsBothTrails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewModificationRepo(db)

	mods := sqlmock.NewRows([]string{"modification_id", "package_service_id", "modification_type",
		"original_price", "modified_price", "remarks",
		"supplier_identifier", "external_supplier_contact", "external_supplier_price"}).
		AddRow(1, 3, "price_change", "20000.00", "18000.00", "discount", "12", nil, nil).
		AddRow(2, 4, "removal", nil, nil, nil, "Petal & Stem Florals", "+639170000009", "7000.00")
	mock.ExpectQuery("FROM modified_event_services m").WithArgs(uint64(7)).WillReturnRows(mods)

	custs := sqlmock.NewRows([]string{"customization_id", "package_service_id", "custom_price",
		"custom_details", "supplier_identifier"}).
		AddRow(9, 3, nil, "gold table runners", "12")
	mock.ExpectQuery("FROM event_service_customizations c").WithArgs(uint64(7)).WillReturnRows(custs)

	modifications, customizations, err := repo.GetByEvent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, modifications, 2)
	require.Len(t, customizations, 1)

	// Internal supplier: identifier is the supplier id as text.
	assert.Equal(t, "12", modifications[0].SupplierIdentifier)
	require.NotNil(t, modifications[0].ModifiedPrice)
	assert.Equal(t, "18000.00", modifications[0].ModifiedPrice.StringFixed(2))

	// External supplier: identifier is the external name.
	assert.Equal(t, "Petal & Stem Florals", modifications[1].SupplierIdentifier)
	assert.Nil(t, modifications[1].OriginalPrice)
	require.NotNil(t, modifications[1].ExternalSupplierPrice)

	assert.Nil(t, customizations[0].CustomPrice)
	require.NotNil(t, customizations[0].CustomDetails)
	assert.Equal(t, "gold table runners", *customizations[0].CustomDetails)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEventEmptyTrails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewModificationRepo(db)

	mock.ExpectQuery("FROM modified_event_services m").WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"modification_id", "package_service_id", "modification_type",
			"original_price", "modified_price", "remarks",
			"supplier_identifier", "external_supplier_contact", "external_supplier_price"}))
	mock.ExpectQuery("FROM event_service_customizations c").WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"customization_id", "package_service_id", "custom_price",
			"custom_details", "supplier_identifier"}))

	modifications, customizations, err := repo.GetByEvent(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, modifications)
	assert.Empty(t, modifications)
	assert.NotNil(t, customizations)
	assert.Empty(t, customizations)
}
