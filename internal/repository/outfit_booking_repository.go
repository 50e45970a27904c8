package repository

import (
	"context"
	"database/sql"

	"github.com/avielle/event-booking-backend/internal/model"
)

// OutfitBookingRepo persists standalone outfit rentals (booked_outfit),
// independent of any event package.
type OutfitBookingRepo struct{ DB *sql.DB }

func NewOutfitBookingRepo(db *sql.DB) *OutfitBookingRepo { return &OutfitBookingRepo{DB: db} }

// Book inserts a rental row and populates the generated ID. A rental that
// overlaps an existing booking for the same outfit maps to ErrConflict.
func (r *OutfitBookingRepo) Book(ctx context.Context, b *model.BookedOutfit) error {
	var overlapping int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM booked_outfit
		 WHERE outfit_id = ? AND status != 'Returned'
		   AND pickup_date <= ? AND return_date >= ?`,
		b.OutfitID, b.ReturnDate, b.PickupDate).Scan(&overlapping)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO booked_outfit (userid, outfit_id, pickup_date, return_date, status, additional_charges)
		 VALUES (?,?,?,?,?,?)`,
		b.UserID, b.OutfitID, b.PickupDate, b.ReturnDate, b.Status, b.AdditionalCharges)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// ListByUser returns the user's outfit rentals, newest first.
func (r *OutfitBookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookedOutfit, error) {
	const q = `SELECT outfit_booked_id, userid, outfit_id,
	                  DATE_FORMAT(pickup_date, '%Y-%m-%d'), DATE_FORMAT(return_date, '%Y-%m-%d'),
	                  status, additional_charges
	           FROM booked_outfit
	           WHERE userid = ?
	           ORDER BY outfit_booked_id DESC`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.BookedOutfit, 0)
	for rows.Next() {
		var b model.BookedOutfit
		if err := rows.Scan(&b.ID, &b.UserID, &b.OutfitID,
			&b.PickupDate, &b.ReturnDate, &b.Status, &b.AdditionalCharges); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
