package model

import "github.com/shopspring/decimal"

// Catalog entities are reusable offerings (venues, suppliers, gown packages,
// outfits, additional services) independent of any booking. They are
// referenced, never owned, by events and package configurations: archiving a
// venue does not touch the bookings that selected it. Monetary columns are
// DECIMAL(12,2) and surface here as decimal.Decimal, never float64.

// CatalogStatusActive is the status value for selectable catalog rows.
// Legacy rows with a NULL status are treated as active where the table
// predates the status column (event packages and package services).
const CatalogStatusActive = "Active"

// Venue mirrors the `venues` table.
type Venue struct {
	ID          uint64          `json:"venue_id"`
	Name        string          `json:"venue_name"`
	Location    string          `json:"location"`
	Price       decimal.Decimal `json:"venue_price"`
	Description string          `json:"description"`
	Capacity    uint32          `json:"venue_capacity"`
}

// Supplier joins `suppliers` with its owning user row: the supplier's display
// name and contact details live on `users`, the service and price on
// `suppliers`.
type Supplier struct {
	ID            uint64               `json:"supplier_id"`
	Firstname     string               `json:"firstname"`
	Lastname      string               `json:"lastname"`
	Name          string               `json:"name"` // "Firstname Lastname"
	Service       string               `json:"service"`
	Price         decimal.Decimal      `json:"price"`
	Email         string               `json:"email"`
	ContactNumber string               `json:"contactnumber"`
	Address       string               `json:"address"`
	UserImg       *string              `json:"user_img"`
	SocialMedia   []SupplierSocialLink `json:"social_media"`
}

// SupplierSocialLink mirrors `supplier_social_media`.
type SupplierSocialLink struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle"`
	URL      string `json:"url"`
}

// GownPackage mirrors the `gown_package` table.
type GownPackage struct {
	ID          uint64          `json:"gown_package_id"`
	Name        string          `json:"gown_package_name"`
	Price       decimal.Decimal `json:"gown_package_price"`
	Description string          `json:"description"`
}

// Outfit mirrors the `outfits` table.
type Outfit struct {
	ID          uint64          `json:"outfit_id"`
	Name        string          `json:"outfit_name"`
	Type        string          `json:"outfit_type"`
	Color       string          `json:"outfit_color"`
	Description string          `json:"outfit_desc"`
	RentPrice   decimal.Decimal `json:"rent_price"`
	Status      string          `json:"status"`
	Image       string          `json:"outfit_img"`
}

// AdditionalService mirrors the `additional_services` table.
type AdditionalService struct {
	ID          uint64          `json:"add_service_id"`
	Name        string          `json:"add_service_name"`
	Description string          `json:"add_service_description"`
	Price       decimal.Decimal `json:"add_service_price"`
}

// EventType mirrors the `event_type` lookup table.
type EventType struct {
	ID   uint64 `json:"event_type_id"`
	Name string `json:"event_type_name"`
}

// DefaultEventTypes are seeded into `event_type` at startup when the table is
// empty.
var DefaultEventTypes = []string{
	"Wedding",
	"Birthday",
	"Corporate Event",
	"Anniversary",
	"Graduation",
	"Family Gathering",
	"Reunion",
	"Conference",
	"Seminar",
	"Other",
}
