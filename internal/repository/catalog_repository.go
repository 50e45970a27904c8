package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avielle/event-booking-backend/internal/model"
	"github.com/avielle/event-booking-backend/internal/pricing"
)

// CatalogRepo reads the reusable offering tables: venues, suppliers, gown
// packages, outfits, additional services and event types. Catalog rows are
// referenced by bookings, never owned by them; nothing here mutates a
// booking and no booking operation mutates the catalog.
type CatalogRepo struct{ DB *sql.DB }

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{DB: db} }

// ListActiveVenues returns all selectable venues.
func (r *CatalogRepo) ListActiveVenues(ctx context.Context) ([]model.Venue, error) {
	const q = `SELECT venue_id, venue_name, location, venue_price, description, venue_capacity
	           FROM venues WHERE status = ? ORDER BY venue_name`
	rows, err := r.DB.QueryContext(ctx, q, model.CatalogStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]model.Venue, 0)
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Location, &v.Price, &v.Description, &v.Capacity); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// ListActiveSuppliers returns all active suppliers joined to their user row,
// with social media links populated in a single follow-up query.
func (r *CatalogRepo) ListActiveSuppliers(ctx context.Context) ([]model.Supplier, error) {
	const q = `SELECT s.supplier_id, u.firstname, u.lastname, s.service, s.price,
	                  u.email, u.contactnumber, u.address, u.user_img
	           FROM suppliers s
	           JOIN users u ON u.userid = s.userid
	           WHERE s.status = ?
	           ORDER BY s.service, u.lastname`
	rows, err := r.DB.QueryContext(ctx, q, model.CatalogStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	suppliers := make([]model.Supplier, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var s model.Supplier
		if err := rows.Scan(&s.ID, &s.Firstname, &s.Lastname, &s.Service, &s.Price,
			&s.Email, &s.ContactNumber, &s.Address, &s.UserImg); err != nil {
			return nil, err
		}
		s.Name = s.Firstname + " " + s.Lastname
		s.SocialMedia = []model.SupplierSocialLink{}
		index[s.ID] = len(suppliers)
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(suppliers) == 0 {
		return suppliers, nil
	}
	ids := make([]interface{}, 0, len(suppliers))
	placeholders := make([]string, 0, len(suppliers))
	for _, s := range suppliers {
		ids = append(ids, s.ID)
		placeholders = append(placeholders, "?")
	}
	socialQ := `SELECT supplier_id, platform, handle, url
	            FROM supplier_social_media
	            WHERE supplier_id IN (` + strings.Join(placeholders, ",") + `)
	            ORDER BY supplier_id, platform`
	srows, err := r.DB.QueryContext(ctx, socialQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var sid uint64
		var link model.SupplierSocialLink
		if err := srows.Scan(&sid, &link.Platform, &link.Handle, &link.URL); err != nil {
			return nil, err
		}
		idx, ok := index[sid]
		if !ok {
			continue
		}
		suppliers[idx].SocialMedia = append(suppliers[idx].SocialMedia, link)
	}
	return suppliers, srows.Err()
}

// ListActiveGownPackages returns all selectable gown packages.
func (r *CatalogRepo) ListActiveGownPackages(ctx context.Context) ([]model.GownPackage, error) {
	const q = `SELECT gown_package_id, gown_package_name, gown_package_price, description
	           FROM gown_package WHERE status = ? ORDER BY gown_package_name`
	rows, err := r.DB.QueryContext(ctx, q, model.CatalogStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	packages := make([]model.GownPackage, 0)
	for rows.Next() {
		var g model.GownPackage
		if err := rows.Scan(&g.ID, &g.Name, &g.Price, &g.Description); err != nil {
			return nil, err
		}
		packages = append(packages, g)
	}
	return packages, rows.Err()
}

// ListActiveServices returns all selectable additional services.
func (r *CatalogRepo) ListActiveServices(ctx context.Context) ([]model.AdditionalService, error) {
	const q = `SELECT add_service_id, add_service_name, add_service_description, add_service_price
	           FROM additional_services WHERE status = ? ORDER BY add_service_name`
	rows, err := r.DB.QueryContext(ctx, q, model.CatalogStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	services := make([]model.AdditionalService, 0)
	for rows.Next() {
		var s model.AdditionalService
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// ListOutfits returns the outfit rental catalog. All statuses are returned;
// availability is a display concern for rentals.
func (r *CatalogRepo) ListOutfits(ctx context.Context) ([]model.Outfit, error) {
	const q = `SELECT outfit_id, outfit_name, outfit_type, outfit_color, outfit_desc, rent_price, status, outfit_img
	           FROM outfits ORDER BY outfit_name`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	outfits := make([]model.Outfit, 0)
	for rows.Next() {
		var o model.Outfit
		if err := rows.Scan(&o.ID, &o.Name, &o.Type, &o.Color, &o.Description, &o.RentPrice, &o.Status, &o.Image); err != nil {
			return nil, err
		}
		outfits = append(outfits, o)
	}
	return outfits, rows.Err()
}

// GetOutfitByID fetches one outfit; sql.ErrNoRows when absent.
func (r *CatalogRepo) GetOutfitByID(ctx context.Context, id uint64) (model.Outfit, error) {
	var o model.Outfit
	err := r.DB.QueryRowContext(ctx,
		`SELECT outfit_id, outfit_name, outfit_type, outfit_color, outfit_desc, rent_price, status, outfit_img
		 FROM outfits WHERE outfit_id = ? LIMIT 1`, id).
		Scan(&o.ID, &o.Name, &o.Type, &o.Color, &o.Description, &o.RentPrice, &o.Status, &o.Image)
	return o, err
}

// CreateOutfit inserts a new rental outfit and populates the generated ID.
func (r *CatalogRepo) CreateOutfit(ctx context.Context, o *model.Outfit) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO outfits (outfit_name, outfit_type, outfit_color, outfit_desc, rent_price, status, outfit_img)
		 VALUES (?,?,?,?,?,?,?)`,
		o.Name, o.Type, o.Color, o.Description, o.RentPrice, o.Status, o.Image)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// ListEventTypes returns the event type lookup table.
func (r *CatalogRepo) ListEventTypes(ctx context.Context) ([]model.EventType, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT event_type_id, event_type_name FROM event_type ORDER BY event_type_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	types := make([]model.EventType, 0)
	for rows.Next() {
		var t model.EventType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// SeedEventTypes inserts the default event types when the table is empty.
// Safe to call on every startup.
func (r *CatalogRepo) SeedEventTypes(ctx context.Context) error {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_type`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range model.DefaultEventTypes {
		if _, err := r.DB.ExecContext(ctx,
			`INSERT INTO event_type (event_type_name) VALUES (?)`, name); err != nil {
			return err
		}
	}
	return nil
}

// CatalogPrice implements pricing.CatalogPricer. A missing row and a row
// with a NULL price column both map to pricing.ErrNotPriced so the resolver
// can fall through to zero.
func (r *CatalogRepo) CatalogPrice(ctx context.Context, kind pricing.Kind, id uint64) (decimal.Decimal, error) {
	var q string
	switch kind {
	case pricing.KindVenue:
		q = `SELECT venue_price FROM venues WHERE venue_id = ?`
	case pricing.KindSupplier:
		q = `SELECT price FROM suppliers WHERE supplier_id = ?`
	case pricing.KindGownPackage:
		q = `SELECT gown_package_price FROM gown_package WHERE gown_package_id = ?`
	case pricing.KindOutfit:
		q = `SELECT rent_price FROM outfits WHERE outfit_id = ?`
	case pricing.KindService:
		q = `SELECT add_service_price FROM additional_services WHERE add_service_id = ?`
	default:
		return decimal.Zero, pricing.ErrNotPriced
	}
	var price decimal.NullDecimal
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, pricing.ErrNotPriced
	}
	if err != nil {
		return decimal.Zero, err
	}
	if !price.Valid {
		return decimal.Zero, pricing.ErrNotPriced
	}
	return price.Decimal, nil
}
