package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is one user's booking: descriptive fields, a schedule, a lifecycle
// status and a total price. An event exclusively owns its package
// configuration and additional items; deleting the event cascades to them.
// Catalog rows it references are never touched.
//
// Schedule/StartTime/EndTime are kept as the strings the DATE/TIME columns
// exchange ("2006-01-02" and "15:04:05"); they are display values, not
// instants, and converting them through time.Time would invent a timezone.
type Event struct {
	ID          uint64          `json:"events_id"`
	UserID      uint64          `json:"userid"`
	Name        string          `json:"event_name"`
	Type        string          `json:"event_type"`
	Theme       string          `json:"event_theme"`
	Color       string          `json:"event_color"`
	PackageID   *uint64         `json:"package_id,omitempty"`
	Schedule    *string         `json:"schedule"`
	StartTime   *string         `json:"start_time"`
	EndTime     *string         `json:"end_time"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	BookingType string          `json:"booking_type"`
	CreatedAt   time.Time       `json:"-"`
}

// Event lifecycle statuses. An event starts as Wishlist on first submission;
// Cancelled events stay in storage but are filtered from every wishlist read.
const (
	EventStatusWishlist  = "Wishlist"
	EventStatusConfirmed = "Confirmed"
	EventStatusCancelled = "Cancelled"
)

// BookingTypeOnline is the default booking channel for client submissions.
const BookingTypeOnline = "Online"

// VenueAssignmentPending is the initial status of a wishlist venue
// assignment; staff flip it once the venue confirms the date.
const VenueAssignmentPending = "Pending"

// InclusionLine is one selected catalog item attached to a package
// configuration. Supplier and outfit lines are structurally identical and
// share this shape; RefID is the catalog reference (supplier_id or
// outfit_id), GownPackageID is set only on outfit lines.
//
// OriginalPrice is the catalog price snapshot taken at selection time and is
// immutable afterwards; only ModifiedPrice/IsModified/IsRemoved/Remarks may
// change on later edits.
type InclusionLine struct {
	ID            uint64          `json:"id"`
	ConfigID      uint64          `json:"config_id"`
	RefID         *uint64         `json:"ref_id"`
	GownPackageID *uint64         `json:"gown_package_id,omitempty"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	ModifiedPrice decimal.Decimal `json:"modified_price"`
	IsModified    bool            `json:"is_modified"`
	IsRemoved     bool            `json:"is_removed"`
	Remarks       string          `json:"remarks"`
}

// AdditionalItem is a non-package line item attached directly to an event.
type AdditionalItem struct {
	ID       uint64          `json:"id"`
	EventsID uint64          `json:"events_id"`
	ItemType string          `json:"item_type"`
	ItemID   uint64          `json:"item_id"`
	Price    decimal.Decimal `json:"price"`
	Remarks  string          `json:"remarks"`
}

// Modification is one append-only row of `modified_event_services`: a logged
// change against a package-service line. Rows are inserted and read, never
// updated or deleted; corrections are new rows.
type Modification struct {
	ID                    uint64           `json:"modification_id"`
	PackageServiceID      uint64           `json:"package_service_id"`
	Type                  string           `json:"modification_type"`
	OriginalPrice         *decimal.Decimal `json:"original_price"`
	ModifiedPrice         *decimal.Decimal `json:"modified_price"`
	Remarks               *string          `json:"remarks"`
	SupplierIdentifier    string           `json:"supplier_identifier"`
	ExternalSupplierPhone *string          `json:"external_supplier_contact,omitempty"`
	ExternalSupplierPrice *decimal.Decimal `json:"external_supplier_price,omitempty"`
}

// Customization is one append-only row of `event_service_customizations`.
// It is a second, independent override trail for the same package-service
// line concept; product has not confirmed merging the two logs, so both are
// kept verbatim.
type Customization struct {
	ID                 uint64           `json:"customization_id"`
	PackageServiceID   uint64           `json:"package_service_id"`
	CustomPrice        *decimal.Decimal `json:"custom_price"`
	CustomDetails      *string          `json:"custom_details"`
	SupplierIdentifier string           `json:"supplier_identifier"`
}

// BookedOutfit mirrors `booked_outfit`: a standalone outfit rental outside
// any event package.
type BookedOutfit struct {
	ID                uint64          `json:"outfit_booked_id"`
	UserID            uint64          `json:"userid"`
	OutfitID          uint64          `json:"outfit_id"`
	PickupDate        string          `json:"pickup_date"`
	ReturnDate        string          `json:"return_date"`
	Status            string          `json:"status"`
	AdditionalCharges decimal.Decimal `json:"additional_charges"`
}

// ScheduleSlot is one occupied calendar slot from the events table, used by
// the booking calendar to grey out taken dates.
type ScheduleSlot struct {
	Schedule  string `json:"schedule"`   // "2006-01-02"
	StartTime string `json:"start_time"` // "15:04"
	EndTime   string `json:"end_time"`   // "15:04"
}
