package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avielle/event-booking-backend/internal/model"
)

// WishlistRepo persists and reads wishlist packages. Writes run under a
// handler-owned transaction; the aggregated read is a parent query plus one
// bulk query per sub-collection, assembled in Go via an index map. No
// database-side array aggregation.
type WishlistRepo struct{ DB *sql.DB }

func NewWishlistRepo(db *sql.DB) *WishlistRepo { return &WishlistRepo{DB: db} }

// WishlistLine is one priced child row (service, supplier or outfit) to
// insert under a wishlist package.
type WishlistLine struct {
	RefID         uint64
	GownPackageID *uint64
	Price         decimal.Decimal
	Remarks       string
}

// CreatePackageTx inserts the wishlist_packages row and returns its id.
func (r *WishlistRepo) CreatePackageTx(ctx context.Context, tx *sql.Tx, pkg *model.NormalizedWishlistPackage) (uint64, error) {
	var venueID *uint64
	if pkg.Selections.Venue != nil {
		venueID = &pkg.Selections.Venue.VenueID
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO wishlist_packages (
		     events_id, package_name, capacity, description, venue_id,
		     gown_package_id, additional_capacity_charges, charge_unit,
		     total_price, event_type_id, status
		 ) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		pkg.EventsID, pkg.PackageName, pkg.Capacity, pkg.Description, venueID,
		pkg.GownPackageID, pkg.AdditionalCapacityCharges, pkg.ChargeUnit,
		pkg.TotalPrice, pkg.EventTypeID, pkg.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// AddVenueTx records the venue assignment for a wishlist package. New
// assignments always start Pending; staff confirm them once the venue
// confirms the date.
func (r *WishlistRepo) AddVenueTx(ctx context.Context, tx *sql.Tx, wishlistID, venueID uint64, price decimal.Decimal, remarks string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO wishlist_venues (wishlist_id, venue_id, price, remarks, status) VALUES (?,?,?,?,?)`,
		wishlistID, venueID, price, remarks, model.VenueAssignmentPending)
	return err
}

// AddServiceLinesTx bulk-inserts additional-service lines.
func (r *WishlistRepo) AddServiceLinesTx(ctx context.Context, tx *sql.Tx, wishlistID uint64, lines []WishlistLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO wishlist_additional_services (wishlist_id, add_service_id, price, remarks) VALUES `
	args := make([]interface{}, 0, len(lines)*4)
	for i, l := range lines {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?,?)"
		args = append(args, wishlistID, l.RefID, l.Price, l.Remarks)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// AddSupplierLinesTx bulk-inserts supplier lines.
func (r *WishlistRepo) AddSupplierLinesTx(ctx context.Context, tx *sql.Tx, wishlistID uint64, lines []WishlistLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO wishlist_suppliers (wishlist_id, supplier_id, price, remarks) VALUES `
	args := make([]interface{}, 0, len(lines)*4)
	for i, l := range lines {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?,?)"
		args = append(args, wishlistID, l.RefID, l.Price, l.Remarks)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// AddOutfitLinesTx bulk-inserts outfit lines. RefID is the outfit id and may
// be accompanied by a gown package reference.
func (r *WishlistRepo) AddOutfitLinesTx(ctx context.Context, tx *sql.Tx, wishlistID uint64, lines []WishlistLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO wishlist_outfits (wishlist_id, outfit_id, gown_package_id, price, remarks) VALUES `
	args := make([]interface{}, 0, len(lines)*5)
	for i, l := range lines {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?,?,?)"
		args = append(args, wishlistID, l.RefID, l.GownPackageID, l.Price, l.Remarks)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ListByUser returns the user's aggregated wishlist, newest package first.
// Cancelled packages are excluded. Every entry's sub-collections are non-nil
// even when empty, and times are formatted "HH:MM:SS".
func (r *WishlistRepo) ListByUser(ctx context.Context, userID uint64) ([]model.WishlistEntry, error) {
	const q = `SELECT e.events_id, e.event_name, e.event_type, e.event_theme, e.event_color,
	                  DATE_FORMAT(e.schedule, '%Y-%m-%d'),
	                  TIME_FORMAT(e.start_time, '%H:%i:%s'),
	                  TIME_FORMAT(e.end_time, '%H:%i:%s'),
	                  e.status,
	                  wp.wishlist_id, wp.package_name, COALESCE(wp.capacity, 0),
	                  COALESCE(wp.description, ''), COALESCE(wp.total_price, 0),
	                  COALESCE(wp.additional_capacity_charges, 0), COALESCE(wp.charge_unit, 1),
	                  wp.status,
	                  v.venue_name, v.location, v.venue_price,
	                  gp.gown_package_name, gp.gown_package_price
	           FROM events e
	           JOIN wishlist_packages wp ON wp.events_id = e.events_id
	           LEFT JOIN venues v ON v.venue_id = wp.venue_id
	           LEFT JOIN gown_package gp ON gp.gown_package_id = wp.gown_package_id
	           WHERE e.userid = ? AND wp.status != 'Cancelled'
	           ORDER BY wp.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]model.WishlistEntry, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var e model.WishlistEntry
		var venuePrice, gownPrice decimal.NullDecimal
		if err := rows.Scan(&e.EventsID, &e.EventName, &e.EventType, &e.EventTheme, &e.EventColor,
			&e.Schedule, &e.StartTime, &e.EndTime, &e.EventStatus,
			&e.WishlistID, &e.PackageName, &e.Capacity,
			&e.PackageDescription, &e.TotalPrice,
			&e.AdditionalCapacityCharges, &e.ChargeUnit,
			&e.PackageStatus,
			&e.VenueName, &e.VenueLocation, &venuePrice,
			&e.GownPackageName, &gownPrice); err != nil {
			return nil, err
		}
		if venuePrice.Valid {
			e.VenuePrice = &venuePrice.Decimal
		}
		if gownPrice.Valid {
			e.GownPackagePrice = &gownPrice.Decimal
		}
		e.Outfits = []model.WishlistOutfit{}
		e.Suppliers = []model.WishlistSupplier{}
		e.AdditionalServices = []model.WishlistAddedService{}
		index[e.WishlistID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	ids := make([]interface{}, 0, len(entries))
	placeholders := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.WishlistID)
		placeholders = append(placeholders, "?")
	}
	in := strings.Join(placeholders, ",")

	// wo.price is the snapshot taken when the line was booked; the catalog's
	// current rent_price must not leak into existing entries.
	outfitQ := `SELECT wo.wishlist_id, o.outfit_id, o.outfit_name, o.outfit_type, o.outfit_color,
	                   o.outfit_desc, wo.price, o.outfit_img, wo.status, wo.remarks
	            FROM wishlist_outfits wo
	            JOIN outfits o ON o.outfit_id = wo.outfit_id
	            WHERE wo.wishlist_id IN (` + in + `)
	            ORDER BY wo.wishlist_id, o.outfit_id`
	orows, err := r.DB.QueryContext(ctx, outfitQ, ids...)
	if err != nil {
		return nil, err
	}
	defer orows.Close()
	for orows.Next() {
		var wid uint64
		var o model.WishlistOutfit
		if err := orows.Scan(&wid, &o.OutfitID, &o.Name, &o.Type, &o.Color,
			&o.Description, &o.RentPrice, &o.Image, &o.Status, &o.Remarks); err != nil {
			return nil, err
		}
		idx, ok := index[wid]
		if !ok {
			continue
		}
		entries[idx].Outfits = append(entries[idx].Outfits, o)
	}
	if err := orows.Err(); err != nil {
		return nil, err
	}

	supplierQ := `SELECT ws.wishlist_id, s.supplier_id,
	                     CONCAT(u.firstname, ' ', u.lastname), s.service,
	                     ws.price, ws.status, ws.remarks
	              FROM wishlist_suppliers ws
	              JOIN suppliers s ON s.supplier_id = ws.supplier_id
	              JOIN users u ON u.userid = s.userid
	              WHERE ws.wishlist_id IN (` + in + `)
	              ORDER BY ws.wishlist_id, s.supplier_id`
	srows, err := r.DB.QueryContext(ctx, supplierQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var wid uint64
		var s model.WishlistSupplier
		if err := srows.Scan(&wid, &s.SupplierID, &s.Name, &s.Service,
			&s.Price, &s.Status, &s.Remarks); err != nil {
			return nil, err
		}
		idx, ok := index[wid]
		if !ok {
			continue
		}
		entries[idx].Suppliers = append(entries[idx].Suppliers, s)
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}

	serviceQ := `SELECT was.wishlist_id, a.add_service_id, a.add_service_name,
	                    a.add_service_description, was.price, was.status, was.remarks
	             FROM wishlist_additional_services was
	             JOIN additional_services a ON a.add_service_id = was.add_service_id
	             WHERE was.wishlist_id IN (` + in + `)
	             ORDER BY was.wishlist_id, a.add_service_id`
	arows, err := r.DB.QueryContext(ctx, serviceQ, ids...)
	if err != nil {
		return nil, err
	}
	defer arows.Close()
	for arows.Next() {
		var wid uint64
		var svc model.WishlistAddedService
		if err := arows.Scan(&wid, &svc.ServiceID, &svc.Name,
			&svc.Description, &svc.Price, &svc.Status, &svc.Remarks); err != nil {
			return nil, err
		}
		idx, ok := index[wid]
		if !ok {
			continue
		}
		entries[idx].AdditionalServices = append(entries[idx].AdditionalServices, svc)
	}
	return entries, arows.Err()
}
