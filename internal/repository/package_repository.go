package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avielle/event-booking-backend/internal/model"
)

// PackageRepo reads the curated event packages offered to clients.
// Sub-collections are fetched as plain one-row-per-child queries and
// assembled in Go; the database never aggregates arrays for us.
type PackageRepo struct{ DB *sql.DB }

func NewPackageRepo(db *sql.DB) *PackageRepo { return &PackageRepo{DB: db} }

// ListActive returns the client package listing: active packages whose venue
// and gown package (when set) are themselves active, newest first. Legacy
// rows with NULL status count as active. Supplier and additional-service
// sub-collections are populated with one bulk query each.
func (r *PackageRepo) ListActive(ctx context.Context) ([]model.EventPackage, error) {
	const q = `SELECT p.package_id, p.package_name,
	                  COALESCE(et.event_type_name, 'Unknown'), p.event_type_id,
	                  COALESCE(p.capacity, 0), COALESCE(p.description, ''),
	                  p.venue_id, COALESCE(v.venue_name, 'No Venue'),
	                  p.gown_package_id, COALESCE(gp.gown_package_name, 'No Gown Package'),
	                  COALESCE(p.additional_capacity_charges, 0), COALESCE(p.charge_unit, 1),
	                  COALESCE(p.total_price, 0), p.created_at, COALESCE(p.status, 'Active')
	           FROM event_packages p
	           LEFT JOIN venues v ON v.venue_id = p.venue_id
	           LEFT JOIN gown_package gp ON gp.gown_package_id = p.gown_package_id
	           LEFT JOIN event_type et ON et.event_type_id = p.event_type_id
	           WHERE UPPER(COALESCE(p.status, 'Active')) = 'ACTIVE'
	             AND (v.status IS NULL OR v.status = 'Active')
	             AND (gp.status IS NULL OR gp.status = 'Active')
	           ORDER BY p.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	packages := make([]model.EventPackage, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var p model.EventPackage
		var createdAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.EventTypeName, &p.EventTypeID,
			&p.Capacity, &p.Description, &p.VenueID, &p.VenueName,
			&p.GownPackageID, &p.GownPackageName,
			&p.AdditionalCapacityCharges, &p.ChargeUnit,
			&p.TotalPrice, &createdAt, &p.Status); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			p.CreatedAt = createdAt.Time.Format("2006-01-02")
		}
		p.Suppliers = []model.PackageSupplier{}
		p.AdditionalServices = []model.PackageAddedSvc{}
		index[p.ID] = len(packages)
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(packages) == 0 {
		return packages, nil
	}

	ids := make([]interface{}, 0, len(packages))
	placeholders := make([]string, 0, len(packages))
	for _, p := range packages {
		ids = append(ids, p.ID)
		placeholders = append(placeholders, "?")
	}
	in := strings.Join(placeholders, ",")

	supplierQ := `SELECT eps.package_id, s.supplier_id,
	                     COALESCE(u.firstname, ''), COALESCE(u.lastname, ''),
	                     COALESCE(s.service, 'Unknown'), COALESCE(s.price, 0),
	                     COALESCE(ps.remarks, '')
	              FROM event_package_services eps
	              JOIN package_service ps ON ps.package_service_id = eps.package_service_id
	              JOIN suppliers s ON s.supplier_id = ps.supplier_id
	              LEFT JOIN users u ON u.userid = s.userid
	              WHERE eps.package_id IN (` + in + `)
	                AND (s.status IS NULL OR s.status = 'Active')`
	srows, err := r.DB.QueryContext(ctx, supplierQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var pkgID uint64
		var sup model.PackageSupplier
		var first, last string
		if err := srows.Scan(&pkgID, &sup.SupplierID, &first, &last, &sup.Service, &sup.Price, &sup.Remarks); err != nil {
			return nil, err
		}
		sup.Name = strings.TrimSpace(first + " " + last)
		idx, ok := index[pkgID]
		if !ok {
			continue
		}
		packages[idx].Suppliers = append(packages[idx].Suppliers, sup)
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}

	serviceQ := `SELECT epas.package_id, a.add_service_id,
	                    COALESCE(a.add_service_name, 'Unknown Service'),
	                    COALESCE(a.add_service_price, 0)
	             FROM event_package_additional_services epas
	             JOIN additional_services a ON a.add_service_id = epas.add_service_id
	             WHERE epas.package_id IN (` + in + `)
	               AND (a.status IS NULL OR a.status = 'Active')`
	arows, err := r.DB.QueryContext(ctx, serviceQ, ids...)
	if err != nil {
		return nil, err
	}
	defer arows.Close()
	for arows.Next() {
		var pkgID uint64
		var svc model.PackageAddedSvc
		if err := arows.Scan(&pkgID, &svc.ServiceID, &svc.Name, &svc.Price); err != nil {
			return nil, err
		}
		idx, ok := index[pkgID]
		if !ok {
			continue
		}
		packages[idx].AdditionalServices = append(packages[idx].AdditionalServices, svc)
	}
	return packages, arows.Err()
}

// GetDetails returns one package with its full service roster. Returns
// sql.ErrNoRows when the package does not exist. Internal roster rows carry
// a supplier id and its user details; external rows carry the
// external_supplier_* columns instead.
func (r *PackageRepo) GetDetails(ctx context.Context, packageID uint64) (*model.PackageDetails, error) {
	const q = `SELECT ep.package_id, ep.package_name, COALESCE(et.event_type_name, ''),
	                  COALESCE(ep.capacity, 0), COALESCE(ep.description, ''),
	                  COALESCE(ep.total_price, 0), COALESCE(ep.additional_capacity_charges, 0),
	                  COALESCE(ep.charge_unit, 1),
	                  COALESCE(v.venue_name, ''), COALESCE(v.location, ''), COALESCE(v.venue_price, 0),
	                  COALESCE(gp.gown_package_name, ''), COALESCE(gp.gown_package_price, 0)
	           FROM event_packages ep
	           LEFT JOIN event_type et ON et.event_type_id = ep.event_type_id
	           LEFT JOIN venues v ON v.venue_id = ep.venue_id
	           LEFT JOIN gown_package gp ON gp.gown_package_id = ep.gown_package_id
	           WHERE ep.package_id = ?`
	var det model.PackageDetails
	err := r.DB.QueryRowContext(ctx, q, packageID).Scan(
		&det.ID, &det.Name, &det.EventTypeName, &det.Capacity, &det.Description,
		&det.TotalPrice, &det.AdditionalCapacityCharges, &det.ChargeUnit,
		&det.VenueName, &det.VenueLocation, &det.VenuePrice,
		&det.GownPackageName, &det.GownPackagePrice,
	)
	if err != nil {
		return nil, err
	}
	det.Services = []model.PackageServiceDetail{}

	const svcQ = `SELECT ps.package_service_id, ps.supplier_id,
	                     COALESCE(s.service, ''), s.price,
	                     COALESCE(u.firstname, ''), COALESCE(u.lastname, ''), COALESCE(u.email, ''),
	                     COALESCE(ps.external_supplier_name, ''), COALESCE(ps.external_supplier_contact, ''),
	                     ps.external_supplier_price, COALESCE(ps.remarks, '')
	              FROM event_package_services eps
	              JOIN package_service ps ON ps.package_service_id = eps.package_service_id
	              LEFT JOIN suppliers s ON s.supplier_id = ps.supplier_id
	              LEFT JOIN users u ON u.userid = s.userid
	              WHERE eps.package_id = ?
	              ORDER BY ps.package_service_id`
	rows, err := r.DB.QueryContext(ctx, svcQ, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d model.PackageServiceDetail
		var svcPrice, extPrice decimal.NullDecimal
		if err := rows.Scan(&d.PackageServiceID, &d.SupplierID,
			&d.Service, &svcPrice,
			&d.SupplierFirstname, &d.SupplierLastname, &d.SupplierEmail,
			&d.ExternalSupplierName, &d.ExternalSupplierPhone,
			&extPrice, &d.Remarks); err != nil {
			return nil, err
		}
		if svcPrice.Valid {
			d.ServicePrice = &svcPrice.Decimal
		}
		if extPrice.Valid {
			d.ExternalSupplierPrice = &extPrice.Decimal
		}
		det.Services = append(det.Services, d)
	}
	return &det, rows.Err()
}
