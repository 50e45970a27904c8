package model

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/shopspring/decimal"
)

// Composite-order submissions arrive in one of two shapes: flat per-kind
// arrays (`suppliers`, `outfits`, `services`, historical
// `additional_services`) or a single tagged `inclusions` array where every
// element carries a `type` discriminant. Frontends have shipped both. The
// shape is negotiated here, at the boundary, so that repositories only ever
// see one typed form; when both shapes are present for the same kind the
// tagged form wins.

// Inclusion is one element of the tagged `inclusions` array.
type Inclusion struct {
	Type string          `json:"type"` // venue | supplier | outfit | service
	Data json.RawMessage `json:"data"`
}

// Inclusion type discriminants.
const (
	InclusionVenue    = "venue"
	InclusionSupplier = "supplier"
	InclusionOutfit   = "outfit"
	InclusionService  = "service"
)

// VenueSelection is a chosen venue. The price has arrived under both
// `venue_price` and `price` from different frontend versions; Price()
// returns whichever is set.
type VenueSelection struct {
	VenueID    uint64           `json:"venue_id"`
	VenuePrice *decimal.Decimal `json:"venue_price"`
	RawPrice   *decimal.Decimal `json:"price"`
	Remarks    string           `json:"remarks"`
}

// Price returns the explicitly supplied venue price, or nil when the catalog
// price should be used.
func (v *VenueSelection) Price() *decimal.Decimal {
	if v.VenuePrice != nil {
		return v.VenuePrice
	}
	return v.RawPrice
}

// SupplierSelection is a chosen supplier line.
type SupplierSelection struct {
	SupplierID    uint64           `json:"supplier_id"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	ModifiedPrice *decimal.Decimal `json:"modified_price"`
	IsModified    bool             `json:"is_modified"`
	IsRemoved     bool             `json:"is_removed"`
	Remarks       string           `json:"remarks"`
}

// OutfitSelection is a chosen outfit / gown package line. Older frontends
// send only `outfit_id` where they mean the gown package; GownPackageRef
// resolves the reference and the alias is applied once during
// normalization so downstream code never re-implements it.
type OutfitSelection struct {
	OutfitID      *uint64          `json:"outfit_id"`
	GownPackageID *uint64          `json:"gown_package_id"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	ModifiedPrice *decimal.Decimal `json:"modified_price"`
	IsModified    bool             `json:"is_modified"`
	IsRemoved     bool             `json:"is_removed"`
	Remarks       string           `json:"remarks"`
}

// GownPackageRef returns the gown package reference, falling back to the
// legacy outfit_id alias when gown_package_id is absent.
func (o *OutfitSelection) GownPackageRef() *uint64 {
	if o.GownPackageID != nil {
		return o.GownPackageID
	}
	return o.OutfitID
}

// ServiceSelection is a chosen additional-service line. The id has arrived
// as both `service_id` and `add_service_id`; ServiceRef returns whichever is
// set.
type ServiceSelection struct {
	ServiceID        *uint64          `json:"service_id"`
	AddServiceID     *uint64          `json:"add_service_id"`
	PackageServiceID *uint64          `json:"package_service_id"`
	SupplierID       *uint64          `json:"supplier_id"`
	Price            *decimal.Decimal `json:"price"`
	Remarks          string           `json:"remarks"`
}

// ServiceRef returns the additional-service catalog id, from either field
// name, or 0 when the selection references a package service instead.
func (s *ServiceSelection) ServiceRef() uint64 {
	if s.ServiceID != nil {
		return *s.ServiceID
	}
	if s.AddServiceID != nil {
		return *s.AddServiceID
	}
	return 0
}

// AdditionalItemSelection is a non-package line item attached directly to
// the event.
type AdditionalItemSelection struct {
	ItemType string           `json:"item_type"`
	ItemID   uint64           `json:"item_id"`
	Price    *decimal.Decimal `json:"price"`
	Remarks  string           `json:"remarks"`
}

// Selections is the normalized set of inclusions for one composite order.
type Selections struct {
	Venue     *VenueSelection
	Suppliers []SupplierSelection
	Outfits   []OutfitSelection
	Services  []ServiceSelection
}

// ErrUnknownInclusionType is returned when a tagged inclusion carries a type
// outside the known discriminants.
var ErrUnknownInclusionType = errors.New("unknown inclusion type")

// NormalizeSelections merges the tagged inclusions with the flat arrays into
// one Selections. Per kind, tagged entries take precedence over the flat
// array; kinds absent from the tagged array fall back to the flat form. The
// outfit_id→gown_package_id alias is materialized here and logged, since it
// is frontend naming drift rather than intent.
func NormalizeSelections(inclusions []Inclusion, flat Selections) (Selections, error) {
	var tagged Selections
	for _, inc := range inclusions {
		switch inc.Type {
		case InclusionVenue:
			var v VenueSelection
			if err := json.Unmarshal(inc.Data, &v); err != nil {
				return Selections{}, err
			}
			tagged.Venue = &v
		case InclusionSupplier:
			var s SupplierSelection
			if err := json.Unmarshal(inc.Data, &s); err != nil {
				return Selections{}, err
			}
			tagged.Suppliers = append(tagged.Suppliers, s)
		case InclusionOutfit:
			var o OutfitSelection
			if err := json.Unmarshal(inc.Data, &o); err != nil {
				return Selections{}, err
			}
			tagged.Outfits = append(tagged.Outfits, o)
		case InclusionService:
			var s ServiceSelection
			if err := json.Unmarshal(inc.Data, &s); err != nil {
				return Selections{}, err
			}
			tagged.Services = append(tagged.Services, s)
		default:
			return Selections{}, ErrUnknownInclusionType
		}
	}

	out := flat
	if tagged.Venue != nil {
		out.Venue = tagged.Venue
	}
	if len(tagged.Suppliers) > 0 {
		out.Suppliers = tagged.Suppliers
	}
	if len(tagged.Outfits) > 0 {
		out.Outfits = tagged.Outfits
	}
	if len(tagged.Services) > 0 {
		out.Services = tagged.Services
	}

	for i := range out.Outfits {
		o := &out.Outfits[i]
		if o.GownPackageID == nil && o.OutfitID != nil {
			// Legacy frontend alias: outfit_id stands in for the gown package.
			log.Printf("composite: aliasing outfit_id %d to gown_package_id", *o.OutfitID)
			o.GownPackageID = o.OutfitID
		}
	}
	return out, nil
}

// CreateEventRequest is the POST /v1/events body: event fields plus the
// composite selections in either shape.
type CreateEventRequest struct {
	EventName   string           `json:"event_name"`
	EventType   string           `json:"event_type"`
	EventTheme  string           `json:"event_theme"`
	EventColor  string           `json:"event_color"`
	PackageID   *uint64          `json:"package_id"`
	Schedule    *string          `json:"schedule"`
	StartTime   *string          `json:"start_time"`
	EndTime     *string          `json:"end_time"`
	Status      string           `json:"status"`
	TotalPrice  *decimal.Decimal `json:"total_price"`
	BookingType string           `json:"booking_type"`

	Suppliers          []SupplierSelection       `json:"suppliers"`
	Outfits            []OutfitSelection         `json:"outfits"`
	Services           []ServiceSelection        `json:"services"`
	AdditionalServices []ServiceSelection        `json:"additional_services"`
	AdditionalItems    []AdditionalItemSelection `json:"additional_items"`
	Inclusions         []Inclusion               `json:"inclusions"`
}

// Normalize applies defaults and shape negotiation, returning the event row
// to insert and the normalized selections.
func (r *CreateEventRequest) Normalize(userID uint64) (Event, Selections, []AdditionalItemSelection, error) {
	status := r.Status
	if status == "" {
		status = EventStatusWishlist
	}
	bookingType := r.BookingType
	if bookingType == "" {
		bookingType = BookingTypeOnline
	}
	total := decimal.Zero
	if r.TotalPrice != nil {
		total = r.TotalPrice.Round(2)
	}
	ev := Event{
		UserID:      userID,
		Name:        r.EventName,
		Type:        r.EventType,
		Theme:       r.EventTheme,
		Color:       r.EventColor,
		PackageID:   r.PackageID,
		Schedule:    r.Schedule,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Status:      status,
		TotalPrice:  total,
		BookingType: bookingType,
	}

	services := r.Services
	if len(services) == 0 {
		services = r.AdditionalServices
	}
	sel, err := NormalizeSelections(r.Inclusions, Selections{
		Suppliers: r.Suppliers,
		Outfits:   r.Outfits,
		Services:  services,
	})
	if err != nil {
		return Event{}, Selections{}, nil, err
	}
	return ev, sel, r.AdditionalItems, nil
}

// WishlistPackageRequest is the POST /v1/wishlist-packages body: the target
// event plus the package fields and selections.
type WishlistPackageRequest struct {
	EventsID                  uint64           `json:"events_id"`
	PackageName               string           `json:"package_name"`
	Capacity                  uint32           `json:"capacity"`
	Description               string           `json:"description"`
	VenueID                   *uint64          `json:"venue_id"`
	Venue                     *VenueSelection  `json:"venue"`
	GownPackageID             *uint64          `json:"gown_package_id"`
	AdditionalCapacityCharges *decimal.Decimal `json:"additional_capacity_charges"`
	ChargeUnit                *uint32          `json:"charge_unit"`
	TotalPrice                *decimal.Decimal `json:"total_price"`
	EventTypeID               *uint64          `json:"event_type_id"`
	Status                    string           `json:"status"`

	Suppliers  []SupplierSelection `json:"suppliers"`
	Outfits    []OutfitSelection   `json:"outfits"`
	Services   []ServiceSelection  `json:"services"`
	Inclusions []Inclusion         `json:"inclusions"`
}

// NormalizedWishlistPackage is the typed form handed to the wishlist
// repository.
type NormalizedWishlistPackage struct {
	EventsID                  uint64
	PackageName               string
	Capacity                  uint32
	Description               string
	GownPackageID             *uint64
	AdditionalCapacityCharges decimal.Decimal
	ChargeUnit                uint32
	TotalPrice                decimal.Decimal
	EventTypeID               *uint64
	Status                    string
	Selections                Selections
}

// Normalize negotiates the request shape. The gown package reference comes
// exclusively from the outfit inclusion (aliased from outfit_id when
// needed); a top-level gown_package_id without an outfit inclusion is
// ignored, matching how bookings have always been recorded. The venue
// selection is lifted from the tagged array when present, else from the
// `venue`/`venue_id` fields.
func (r *WishlistPackageRequest) Normalize() (NormalizedWishlistPackage, error) {
	flatVenue := r.Venue
	if flatVenue == nil && r.VenueID != nil {
		flatVenue = &VenueSelection{VenueID: *r.VenueID}
	}
	sel, err := NormalizeSelections(r.Inclusions, Selections{
		Venue:     flatVenue,
		Suppliers: r.Suppliers,
		Outfits:   r.Outfits,
		Services:  r.Services,
	})
	if err != nil {
		return NormalizedWishlistPackage{}, err
	}

	var gownRef *uint64
	for i := range sel.Outfits {
		if ref := sel.Outfits[i].GownPackageRef(); ref != nil {
			gownRef = ref
			break
		}
	}

	charges := decimal.Zero
	if r.AdditionalCapacityCharges != nil {
		charges = r.AdditionalCapacityCharges.Round(2)
	}
	unit := uint32(1)
	if r.ChargeUnit != nil {
		unit = *r.ChargeUnit
	}
	total := decimal.Zero
	if r.TotalPrice != nil {
		total = r.TotalPrice.Round(2)
	}
	status := r.Status
	if status == "" {
		status = CatalogStatusActive
	}
	return NormalizedWishlistPackage{
		EventsID:                  r.EventsID,
		PackageName:               r.PackageName,
		Capacity:                  r.Capacity,
		Description:               r.Description,
		GownPackageID:             gownRef,
		AdditionalCapacityCharges: charges,
		ChargeUnit:                unit,
		TotalPrice:                total,
		EventTypeID:               r.EventTypeID,
		Status:                    status,
		Selections:                sel,
	}, nil
}
