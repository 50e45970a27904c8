package repository

import (
	"context"
	"database/sql"

	"github.com/avielle/event-booking-backend/internal/model"
)

// EventRepo persists composite orders: the event row, its package
// configuration and the inclusion lines under it. All writes take an
// explicit *sql.Tx so the handler owns the transaction boundary; a composite
// order is all-or-nothing and partial writes must never become visible.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

// CreateTx inserts the events row and populates the generated ID.
func (r *EventRepo) CreateTx(ctx context.Context, tx *sql.Tx, ev *model.Event) error {
	const q = `INSERT INTO events (
	               userid, event_name, event_type, event_theme, event_color,
	               package_id, schedule, start_time, end_time, status,
	               total_price, booking_type
	           ) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := tx.ExecContext(ctx, q,
		ev.UserID, ev.Name, ev.Type, ev.Theme, ev.Color,
		ev.PackageID, ev.Schedule, ev.StartTime, ev.EndTime, ev.Status,
		ev.TotalPrice, ev.BookingType)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// CreateConfigTx inserts the package configuration row tying the event to
// its chosen package and returns the generated config id.
func (r *EventRepo) CreateConfigTx(ctx context.Context, tx *sql.Tx, eventsID, packageID uint64) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO event_package_configurations (events_id, package_id) VALUES (?,?)`,
		eventsID, packageID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// AddSupplierLinesTx bulk-inserts supplier inclusion lines under a config.
// An empty slice is a no-op.
func (r *EventRepo) AddSupplierLinesTx(ctx context.Context, tx *sql.Tx, configID uint64, lines []model.InclusionLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO event_package_suppliers
	          (config_id, supplier_id, original_price, modified_price, is_modified, is_removed, remarks) VALUES `
	args := make([]interface{}, 0, len(lines)*7)
	for i, l := range lines {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?,?,?,?,?)"
		args = append(args, configID, l.RefID, l.OriginalPrice, l.ModifiedPrice, l.IsModified, l.IsRemoved, l.Remarks)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// AddOutfitLinesTx bulk-inserts outfit inclusion lines under a config.
func (r *EventRepo) AddOutfitLinesTx(ctx context.Context, tx *sql.Tx, configID uint64, lines []model.InclusionLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO event_package_outfits
	          (config_id, outfit_id, gown_package_id, original_price, modified_price, is_modified, is_removed, remarks) VALUES `
	args := make([]interface{}, 0, len(lines)*8)
	for i, l := range lines {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?,?,?,?,?,?)"
		args = append(args, configID, l.RefID, l.GownPackageID, l.OriginalPrice, l.ModifiedPrice, l.IsModified, l.IsRemoved, l.Remarks)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// LinkPackageServiceTx attaches an existing package_service row to the
// package roster for this order.
func (r *EventRepo) LinkPackageServiceTx(ctx context.Context, tx *sql.Tx, packageID, packageServiceID uint64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO event_package_services (package_id, package_service_id) VALUES (?,?)`,
		packageID, packageServiceID)
	return err
}

// CreateAdHocPackageServiceTx inserts a new package_service row for a
// supplier chosen outside the package roster and returns its id.
func (r *EventRepo) CreateAdHocPackageServiceTx(ctx context.Context, tx *sql.Tx, supplierID *uint64, remarks string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO package_service (supplier_id, remarks) VALUES (?,?)`,
		supplierID, remarks)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// AddAdditionalItemsTx bulk-inserts non-package line items on the event.
func (r *EventRepo) AddAdditionalItemsTx(ctx context.Context, tx *sql.Tx, eventsID uint64, items []model.AdditionalItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO event_additional_items (events_id, item_type, item_id, price, remarks) VALUES `
	args := make([]interface{}, 0, len(items)*5)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?,?,?)"
		args = append(args, eventsID, it.ItemType, it.ItemID, it.Price, it.Remarks)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// DeleteTx removes an event and everything it owns. Ownership is verified
// first: sql.ErrNoRows when the event does not exist, ErrForbidden when it
// belongs to another user. Catalog rows referenced by the deleted lines are
// untouched.
func (r *EventRepo) DeleteTx(ctx context.Context, tx *sql.Tx, eventsID, userID uint64) error {
	var ownerID uint64
	if err := tx.QueryRowContext(ctx,
		`SELECT userid FROM events WHERE events_id = ?`, eventsID).Scan(&ownerID); err != nil {
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}
	// Children first: wishlist rows hang off wishlist_packages, inclusion
	// lines off event_package_configurations.
	stmts := []string{
		`DELETE ws FROM wishlist_suppliers ws
		 JOIN wishlist_packages wp ON wp.wishlist_id = ws.wishlist_id
		 WHERE wp.events_id = ?`,
		`DELETE wo FROM wishlist_outfits wo
		 JOIN wishlist_packages wp ON wp.wishlist_id = wo.wishlist_id
		 WHERE wp.events_id = ?`,
		`DELETE wa FROM wishlist_additional_services wa
		 JOIN wishlist_packages wp ON wp.wishlist_id = wa.wishlist_id
		 WHERE wp.events_id = ?`,
		`DELETE wv FROM wishlist_venues wv
		 JOIN wishlist_packages wp ON wp.wishlist_id = wv.wishlist_id
		 WHERE wp.events_id = ?`,
		`DELETE FROM wishlist_packages WHERE events_id = ?`,
		`DELETE es FROM event_package_suppliers es
		 JOIN event_package_configurations c ON c.config_id = es.config_id
		 WHERE c.events_id = ?`,
		`DELETE eo FROM event_package_outfits eo
		 JOIN event_package_configurations c ON c.config_id = eo.config_id
		 WHERE c.events_id = ?`,
		`DELETE FROM event_package_configurations WHERE events_id = ?`,
		`DELETE FROM event_additional_items WHERE events_id = ?`,
		`DELETE FROM events WHERE events_id = ?`,
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q, eventsID); err != nil {
			return err
		}
	}
	return nil
}

// ListSchedules returns occupied upcoming calendar slots for the booking
// calendar. Times are trimmed to "HH:MM".
func (r *EventRepo) ListSchedules(ctx context.Context) ([]model.ScheduleSlot, error) {
	const q = `SELECT DATE_FORMAT(schedule, '%Y-%m-%d'),
	                  TIME_FORMAT(start_time, '%H:%i'),
	                  TIME_FORMAT(end_time, '%H:%i')
	           FROM events
	           WHERE schedule IS NOT NULL
	             AND start_time IS NOT NULL
	             AND end_time IS NOT NULL
	             AND schedule >= CURDATE()
	             AND (status = 'Wishlist' OR status IS NULL)
	           ORDER BY schedule, start_time`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]model.ScheduleSlot, 0)
	for rows.Next() {
		var s model.ScheduleSlot
		if err := rows.Scan(&s.Schedule, &s.StartTime, &s.EndTime); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
