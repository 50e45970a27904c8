package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/avielle/event-booking-backend/internal/model"
	"github.com/avielle/event-booking-backend/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password, inserts the user and populates the generated
// ID. Duplicate email or username maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.TrimSpace(u.Username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (firstname, lastname, username, email, contactnumber, password, user_type, address)
		 VALUES (?,?,?,?,?,?,?,?)`,
		u.Firstname, u.Lastname, u.Username, u.Email, u.ContactNumber, hash, u.UserType, u.Address)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	u.PasswordHash = hash
	return nil
}

const userColumns = `userid, firstname, lastname, username, email, contactnumber, password, user_type, address, user_img`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Firstname, &u.Lastname, &u.Username, &u.Email,
		&u.ContactNumber, &u.PasswordHash, &u.UserType, &u.Address, &u.UserImg)
	return u, err
}

// GetByIdentifier fetches a user by email or username; logins accept either.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	identifier = strings.TrimSpace(identifier)
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? OR username = ? LIMIT 1`,
		strings.ToLower(identifier), identifier))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE userid = ? LIMIT 1`, id))
}

// UpdateProfile replaces the editable profile fields.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, firstname, lastname, contactNumber, address string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET firstname = ?, lastname = ?, contactnumber = ?, address = ? WHERE userid = ?`,
		firstname, lastname, contactNumber, address, id)
	return err
}

// UpdateProfilePicture stores the new picture filename and returns the
// previous one so the caller can remove the stale file from disk.
func (r *UserRepo) UpdateProfilePicture(ctx context.Context, id uint64, filename string) (*string, error) {
	var previous *string
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_img FROM users WHERE userid = ? LIMIT 1`, id).Scan(&previous)
	if err != nil {
		return nil, err
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE users SET user_img = ? WHERE userid = ?`, filename, id)
	if err != nil {
		return nil, err
	}
	return previous, nil
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password = ? WHERE userid = ?`, hash, id)
	return err
}
