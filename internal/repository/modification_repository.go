package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/avielle/event-booking-backend/internal/model"
)

// ModificationRepo maintains the two append-only override trails for
// package-service lines: modified_event_services and
// event_service_customizations. Rows are only ever inserted and read;
// corrections are new rows. The trails are independent of each other and of
// the inclusion lines they describe.
type ModificationRepo struct{ DB *sql.DB }

func NewModificationRepo(db *sql.DB) *ModificationRepo { return &ModificationRepo{DB: db} }

// RecordModification appends one modified_event_services row and returns its
// generated id.
func (r *ModificationRepo) RecordModification(ctx context.Context, eventsID, packageServiceID uint64, modificationType string, originalPrice, modifiedPrice *decimal.Decimal, remarks *string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO modified_event_services
		 (event_id, package_service_id, modification_type, original_price, modified_price, remarks)
		 VALUES (?,?,?,?,?,?)`,
		eventsID, packageServiceID, modificationType, originalPrice, modifiedPrice, remarks)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// RecordCustomization appends one event_service_customizations row and
// returns its generated id.
func (r *ModificationRepo) RecordCustomization(ctx context.Context, eventsID, packageServiceID uint64, customPrice *decimal.Decimal, customDetails *string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO event_service_customizations
		 (event_id, package_service_id, custom_price, custom_details)
		 VALUES (?,?,?,?)`,
		eventsID, packageServiceID, customPrice, customDetails)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEvent returns both trails for one event in insertion order. The
// supplier identifier is the supplier id rendered as text for internal
// suppliers, or the external supplier name for externally sourced lines.
func (r *ModificationRepo) GetByEvent(ctx context.Context, eventsID uint64) ([]model.Modification, []model.Customization, error) {
	const modQ = `SELECT m.modification_id, m.package_service_id, m.modification_type,
	                     m.original_price, m.modified_price, m.remarks,
	                     COALESCE(CAST(ps.supplier_id AS CHAR), ps.external_supplier_name, ''),
	                     ps.external_supplier_contact, ps.external_supplier_price
	              FROM modified_event_services m
	              JOIN package_service ps ON ps.package_service_id = m.package_service_id
	              WHERE m.event_id = ?
	              ORDER BY m.created_at`
	rows, err := r.DB.QueryContext(ctx, modQ, eventsID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	modifications := make([]model.Modification, 0)
	for rows.Next() {
		var m model.Modification
		var origPrice, modPrice, extPrice decimal.NullDecimal
		if err := rows.Scan(&m.ID, &m.PackageServiceID, &m.Type,
			&origPrice, &modPrice, &m.Remarks,
			&m.SupplierIdentifier, &m.ExternalSupplierPhone, &extPrice); err != nil {
			return nil, nil, err
		}
		if origPrice.Valid {
			m.OriginalPrice = &origPrice.Decimal
		}
		if modPrice.Valid {
			m.ModifiedPrice = &modPrice.Decimal
		}
		if extPrice.Valid {
			m.ExternalSupplierPrice = &extPrice.Decimal
		}
		modifications = append(modifications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	const custQ = `SELECT c.customization_id, c.package_service_id, c.custom_price, c.custom_details,
	                      COALESCE(CAST(ps.supplier_id AS CHAR), ps.external_supplier_name, '')
	               FROM event_service_customizations c
	               JOIN package_service ps ON ps.package_service_id = c.package_service_id
	               WHERE c.event_id = ?
	               ORDER BY c.created_at`
	crows, err := r.DB.QueryContext(ctx, custQ, eventsID)
	if err != nil {
		return nil, nil, err
	}
	defer crows.Close()
	customizations := make([]model.Customization, 0)
	for crows.Next() {
		var c model.Customization
		var price decimal.NullDecimal
		if err := crows.Scan(&c.ID, &c.PackageServiceID, &price, &c.CustomDetails, &c.SupplierIdentifier); err != nil {
			return nil, nil, err
		}
		if price.Valid {
			c.CustomPrice = &price.Decimal
		}
		customizations = append(customizations, c)
	}
	return modifications, customizations, crows.Err()
}
