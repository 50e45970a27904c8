package model

import "github.com/shopspring/decimal"

// EventPackage is a curated catalog package: a venue plus a gown package plus
// a set of package services, sold under one price. Mirrors `event_packages`
// with the joined display columns the client listing needs.
type EventPackage struct {
	ID                        uint64             `json:"package_id"`
	Name                      string             `json:"package_name"`
	EventTypeID               *uint64            `json:"event_type_id,omitempty"`
	EventTypeName             string             `json:"event_type_name"`
	Capacity                  uint32             `json:"capacity"`
	Description               string             `json:"description"`
	VenueID                   *uint64            `json:"venue_id,omitempty"`
	VenueName                 string             `json:"venue_name"`
	GownPackageID             *uint64            `json:"gown_package_id,omitempty"`
	GownPackageName           string             `json:"gown_package_name"`
	AdditionalCapacityCharges decimal.Decimal    `json:"additional_capacity_charges"`
	ChargeUnit                uint32             `json:"charge_unit"`
	TotalPrice                decimal.Decimal    `json:"total_price"`
	CreatedAt                 string             `json:"created_at,omitempty"` // "YYYY-MM-DD"
	Status                    string             `json:"status"`
	Suppliers                 []PackageSupplier  `json:"suppliers"`
	AdditionalServices        []PackageAddedSvc  `json:"additional_services"`
}

// PackageSupplier is one supplier line inside a package listing.
type PackageSupplier struct {
	SupplierID uint64          `json:"supplier_id"`
	Name       string          `json:"name"`
	Service    string          `json:"service"`
	Price      decimal.Decimal `json:"price"`
	Remarks    string          `json:"remarks"`
}

// PackageAddedSvc is one additional-service line inside a package listing.
type PackageAddedSvc struct {
	ServiceID uint64          `json:"service_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// PackageDetails is the single-package view with the full service roster.
// Internal suppliers carry a supplier id; externally sourced services carry
// only a name/contact/price on the package_service row itself.
type PackageDetails struct {
	ID                        uint64                 `json:"package_id"`
	Name                      string                 `json:"package_name"`
	EventTypeName             string                 `json:"event_type_name"`
	Capacity                  uint32                 `json:"capacity"`
	Description               string                 `json:"description"`
	TotalPrice                decimal.Decimal        `json:"total_price"`
	AdditionalCapacityCharges decimal.Decimal        `json:"additional_capacity_charges"`
	ChargeUnit                uint32                 `json:"charge_unit"`
	VenueName                 string                 `json:"venue_name"`
	VenueLocation             string                 `json:"venue_location"`
	VenuePrice                decimal.Decimal        `json:"venue_price"`
	GownPackageName           string                 `json:"gown_package_name"`
	GownPackagePrice          decimal.Decimal        `json:"gown_package_price"`
	Services                  []PackageServiceDetail `json:"services"`
}

// PackageServiceDetail is one `package_service` row joined to its supplier
// (when internal). Exactly one of SupplierID / ExternalSupplierName is
// meaningful.
type PackageServiceDetail struct {
	PackageServiceID      uint64           `json:"package_service_id"`
	SupplierID            *uint64          `json:"supplier_id,omitempty"`
	Service               string           `json:"service,omitempty"`
	ServicePrice          *decimal.Decimal `json:"service_price,omitempty"`
	SupplierFirstname     string           `json:"supplier_firstname,omitempty"`
	SupplierLastname      string           `json:"supplier_lastname,omitempty"`
	SupplierEmail         string           `json:"supplier_email,omitempty"`
	ExternalSupplierName  string           `json:"external_supplier_name,omitempty"`
	ExternalSupplierPhone string           `json:"external_supplier_contact,omitempty"`
	ExternalSupplierPrice *decimal.Decimal `json:"external_supplier_price,omitempty"`
	Remarks               string           `json:"remarks"`
}
