package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func u64(v uint64) *uint64 { return &v }

func TestNormalizeSelectionsFlatOnly(t *testing.T) {
	sel, err := NormalizeSelections(nil, Selections{
		Suppliers: []SupplierSelection{{SupplierID: 3, Price: dec("1500.00")}},
		Services:  []ServiceSelection{{ServiceID: u64(7)}},
	})
	require.NoError(t, err)
	require.Len(t, sel.Suppliers, 1)
	assert.Equal(t, uint64(3), sel.Suppliers[0].SupplierID)
	require.Len(t, sel.Services, 1)
	assert.Equal(t, uint64(7), sel.Services[0].ServiceRef())
	assert.Nil(t, sel.Venue)
}

func TestNormalizeSelectionsTaggedWinsPerKind(t *testing.T) {
	inclusions := []Inclusion{
		{Type: InclusionSupplier, Data: json.RawMessage(`{"supplier_id": 9, "price": 2000}`)},
		{Type: InclusionVenue, Data: json.RawMessage(`{"venue_id": 4, "venue_price": 50000}`)},
	}
	sel, err := NormalizeSelections(inclusions, Selections{
		Suppliers: []SupplierSelection{{SupplierID: 3}},
		Outfits:   []OutfitSelection{{GownPackageID: u64(2)}},
	})
	require.NoError(t, err)

	// Tagged suppliers replace the flat ones entirely.
	require.Len(t, sel.Suppliers, 1)
	assert.Equal(t, uint64(9), sel.Suppliers[0].SupplierID)

	// No tagged outfit, so the flat outfit survives.
	require.Len(t, sel.Outfits, 1)
	assert.Equal(t, uint64(2), *sel.Outfits[0].GownPackageID)

	require.NotNil(t, sel.Venue)
	assert.Equal(t, uint64(4), sel.Venue.VenueID)
	assert.True(t, sel.Venue.Price().Equal(decimal.NewFromInt(50000)))
}

func TestNormalizeSelectionsUnknownType(t *testing.T) {
	_, err := NormalizeSelections([]Inclusion{
		{Type: "caterer", Data: json.RawMessage(`{}`)},
	}, Selections{})
	assert.ErrorIs(t, err, ErrUnknownInclusionType)
}

func TestNormalizeSelectionsOutfitAlias(t *testing.T) {
	sel, err := NormalizeSelections(nil, Selections{
		Outfits: []OutfitSelection{
			{OutfitID: u64(11)},
			{GownPackageID: u64(5), OutfitID: u64(99)},
		},
	})
	require.NoError(t, err)
	require.Len(t, sel.Outfits, 2)
	// outfit_id stands in when gown_package_id is absent.
	require.NotNil(t, sel.Outfits[0].GownPackageID)
	assert.Equal(t, uint64(11), *sel.Outfits[0].GownPackageID)
	// An explicit gown_package_id is never overwritten by the alias.
	assert.Equal(t, uint64(5), *sel.Outfits[1].GownPackageID)
}

func TestVenueSelectionPriceKeys(t *testing.T) {
	var v VenueSelection
	require.NoError(t, json.Unmarshal([]byte(`{"venue_id":1,"price":1200.50}`), &v))
	require.NotNil(t, v.Price())
	assert.True(t, v.Price().Equal(decimal.RequireFromString("1200.50")))

	var w VenueSelection
	require.NoError(t, json.Unmarshal([]byte(`{"venue_id":1,"venue_price":800,"price":999}`), &w))
	assert.True(t, w.Price().Equal(decimal.NewFromInt(800)), "venue_price takes precedence")
}

func TestServiceSelectionRefKeys(t *testing.T) {
	var s ServiceSelection
	require.NoError(t, json.Unmarshal([]byte(`{"add_service_id":14}`), &s))
	assert.Equal(t, uint64(14), s.ServiceRef())

	var z ServiceSelection
	require.NoError(t, json.Unmarshal([]byte(`{"package_service_id":6}`), &z))
	assert.Equal(t, uint64(0), z.ServiceRef())
}

func TestCreateEventRequestNormalizeDefaults(t *testing.T) {
	req := CreateEventRequest{
		EventName: "Garden Wedding",
		EventType: "Wedding",
		AdditionalServices: []ServiceSelection{
			{AddServiceID: u64(2), Price: dec("300")},
		},
	}
	ev, sel, items, err := req.Normalize(42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), ev.UserID)
	assert.Equal(t, EventStatusWishlist, ev.Status)
	assert.Equal(t, BookingTypeOnline, ev.BookingType)
	assert.True(t, ev.TotalPrice.IsZero())
	assert.Empty(t, items)
	// additional_services is the historical alias for services.
	require.Len(t, sel.Services, 1)
	assert.Equal(t, uint64(2), sel.Services[0].ServiceRef())
}

func TestCreateEventRequestServicesOverrideAlias(t *testing.T) {
	req := CreateEventRequest{
		EventName:          "Debut",
		Services:           []ServiceSelection{{ServiceID: u64(1)}},
		AdditionalServices: []ServiceSelection{{ServiceID: u64(9)}},
	}
	_, sel, _, err := req.Normalize(1)
	require.NoError(t, err)
	require.Len(t, sel.Services, 1)
	assert.Equal(t, uint64(1), sel.Services[0].ServiceRef())
}

func TestWishlistPackageRequestNormalize(t *testing.T) {
	req := WishlistPackageRequest{
		EventsID:    12,
		PackageName: "Custom Pearl",
		Capacity:    150,
		VenueID:     u64(3),
		TotalPrice:  dec("85000.005"),
		Inclusions: []Inclusion{
			{Type: InclusionOutfit, Data: json.RawMessage(`{"outfit_id": 21}`)},
		},
	}
	pkg, err := req.Normalize()
	require.NoError(t, err)
	assert.Equal(t, uint64(12), pkg.EventsID)
	assert.Equal(t, CatalogStatusActive, pkg.Status)
	assert.Equal(t, uint32(1), pkg.ChargeUnit)
	assert.Equal(t, "85000.01", pkg.TotalPrice.StringFixed(2))
	// Gown reference comes from the aliased outfit inclusion.
	require.NotNil(t, pkg.GownPackageID)
	assert.Equal(t, uint64(21), *pkg.GownPackageID)
	// venue_id without a venue object still yields a selection.
	require.NotNil(t, pkg.Selections.Venue)
	assert.Equal(t, uint64(3), pkg.Selections.Venue.VenueID)
	assert.Nil(t, pkg.Selections.Venue.Price())
}

func TestWishlistPackageRequestTaggedVenueWins(t *testing.T) {
	req := WishlistPackageRequest{
		EventsID: 1,
		VenueID:  u64(3),
		Inclusions: []Inclusion{
			{Type: InclusionVenue, Data: json.RawMessage(`{"venue_id": 8, "price": 40000}`)},
		},
	}
	pkg, err := req.Normalize()
	require.NoError(t, err)
	require.NotNil(t, pkg.Selections.Venue)
	assert.Equal(t, uint64(8), pkg.Selections.Venue.VenueID)
}
