package model

import "github.com/shopspring/decimal"

// WishlistEntry is the denormalized client view of one composite order: the
// event row joined with its wishlist package, venue and gown package, plus
// the three inclusion sub-collections. Sub-collections are always non-nil;
// an entry with no suppliers serializes as "suppliers": [], never null.
type WishlistEntry struct {
	EventsID                  uint64                  `json:"events_id"`
	EventName                 string                  `json:"event_name"`
	EventType                 string                  `json:"event_type"`
	EventTheme                string                  `json:"event_theme"`
	EventColor                string                  `json:"event_color"`
	Schedule                  *string                 `json:"schedule"`
	StartTime                 *string                 `json:"start_time"` // "HH:MM:SS"
	EndTime                   *string                 `json:"end_time"`   // "HH:MM:SS"
	EventStatus               string                  `json:"event_status"`
	WishlistID                uint64                  `json:"wishlist_id"`
	PackageName               string                  `json:"package_name"`
	Capacity                  uint32                  `json:"capacity"`
	PackageDescription        string                  `json:"package_description"`
	TotalPrice                decimal.Decimal         `json:"total_price"`
	AdditionalCapacityCharges decimal.Decimal         `json:"additional_capacity_charges"`
	ChargeUnit                uint32                  `json:"charge_unit"`
	PackageStatus             string                  `json:"package_status"`
	VenueName                 *string                 `json:"venue_name"`
	VenueLocation             *string                 `json:"location"`
	VenuePrice                *decimal.Decimal        `json:"venue_price"`
	GownPackageName           *string                 `json:"gown_package_name"`
	GownPackagePrice          *decimal.Decimal        `json:"gown_package_price"`
	Outfits                   []WishlistOutfit        `json:"outfits"`
	Suppliers                 []WishlistSupplier      `json:"suppliers"`
	AdditionalServices        []WishlistAddedService  `json:"additional_services"`
}

// WishlistOutfit is one outfit line of a wishlist entry joined to its
// catalog outfit.
type WishlistOutfit struct {
	OutfitID    uint64          `json:"outfit_id"`
	Name        string          `json:"outfit_name"`
	Type        string          `json:"outfit_type"`
	Color       string          `json:"outfit_color"`
	Description string          `json:"outfit_desc"`
	RentPrice   decimal.Decimal `json:"rent_price"`
	Image       string          `json:"outfit_img"`
	Status      *string         `json:"status"`
	Remarks     *string         `json:"remarks"`
}

// WishlistSupplier is one supplier line of a wishlist entry joined to the
// supplier's user record for the display name.
type WishlistSupplier struct {
	SupplierID uint64          `json:"supplier_id"`
	Name       string          `json:"name"`
	Service    string          `json:"service"`
	Price      decimal.Decimal `json:"price"`
	Status     *string         `json:"status"`
	Remarks    *string         `json:"remarks"`
}

// WishlistAddedService is one additional-service line of a wishlist entry.
type WishlistAddedService struct {
	ServiceID   uint64          `json:"add_service_id"`
	Name        string          `json:"add_service_name"`
	Description string          `json:"add_service_description"`
	Price       decimal.Decimal `json:"add_service_price"`
	Status      *string         `json:"status"`
	Remarks     *string         `json:"remarks"`
}
