package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kalakriti/events-backend/internal/model"
	"github.com/kalakriti/events-backend/internal/utils"
)

// UserRepo provides access to the users table.  Deletion is a soft
// operation: rows are never removed, the status flag flips to false so
// registrations keep a valid foreign key.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `user_id, email, full_name, password, phone_number, age, address, city, state, previous_experience, role, status, created_at, updated_at`

// NewUserInput carries the profile fields accepted at signup.
type NewUserInput struct {
	Email              string
	Password           string
	FullName           string
	PhoneNumber        string
	Age                *string
	Address            *string
	City               *string
	State              *string
	PreviousExperience *string
}

// Create inserts a user with a freshly generated USER id and returns it.
// The password is hashed here so callers never handle the hash themselves.
func (r *UserRepo) Create(ctx context.Context, in NewUserInput, bcryptCost int) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	hash, err := utils.HashPassword(in.Password, bcryptCost)
	if err != nil {
		return model.User{}, err
	}
	id := model.NewUserID()
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO users (user_id, email, full_name, password, phone_number, age, address, city, state, previous_experience, role, status) VALUES (?,?,?,?,?,?,?,?,?,?,'user',1)`,
		id, email, in.FullName, hash, in.PhoneNumber, in.Age, in.Address, in.City, in.State, in.PreviousExperience)
	if err != nil {
		// 1062 = MySQL duplicate key; email is the only unique secondary index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByEmail fetches an active user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=? AND status=1 LIMIT 1`, email))
}

// GetByID fetches an active user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id=? AND status=1 LIMIT 1`, id))
}

// UserFilter narrows List results.  Zero-valued fields are ignored; email,
// city and state match as substrings like the admin dashboard expects.
type UserFilter struct {
	UserID string
	Email  string
	City   string
	State  string
	Age    string
}

// List returns active users matching the filter.
func (r *UserRepo) List(ctx context.Context, f UserFilter) ([]model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE status=1`
	args := []interface{}{}
	if f.UserID != "" {
		q += " AND user_id=?"
		args = append(args, f.UserID)
	}
	if f.Email != "" {
		q += " AND email LIKE ?"
		args = append(args, "%"+strings.ToLower(f.Email)+"%")
	}
	if f.City != "" {
		q += " AND city LIKE ?"
		args = append(args, "%"+f.City+"%")
	}
	if f.State != "" {
		q += " AND state LIKE ?"
		args = append(args, "%"+f.State+"%")
	}
	if f.Age != "" {
		q += " AND age=?"
		args = append(args, f.Age)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UserUpdate lists the mutable profile fields.  Nil pointers leave the
// column untouched; a non-nil Password is re-hashed before storage.
type UserUpdate struct {
	Email              *string
	Password           *string
	FullName           *string
	PhoneNumber        *string
	Age                *string
	Address            *string
	City               *string
	State              *string
	PreviousExperience *string
}

// Update applies the non-nil fields of upd to the given user.  Changing the
// email re-checks uniqueness; the database enforces it either way.
func (r *UserRepo) Update(ctx context.Context, id string, upd UserUpdate, bcryptCost int) (model.User, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if upd.Email != nil {
		add("email", strings.ToLower(strings.TrimSpace(*upd.Email)))
	}
	if upd.Password != nil {
		hash, err := utils.HashPassword(*upd.Password, bcryptCost)
		if err != nil {
			return model.User{}, err
		}
		add("password", hash)
	}
	if upd.FullName != nil {
		add("full_name", *upd.FullName)
	}
	if upd.PhoneNumber != nil {
		add("phone_number", *upd.PhoneNumber)
	}
	if upd.Age != nil {
		add("age", *upd.Age)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.City != nil {
		add("city", *upd.City)
	}
	if upd.State != nil {
		add("state", *upd.State)
	}
	if upd.PreviousExperience != nil {
		add("previous_experience", *upd.PreviousExperience)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(sets, ",")+` WHERE user_id=? AND status=1`, args...)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// No row changed: either the user is gone or the values were equal.
		// Distinguish by reading the row back.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.User{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// SoftDelete marks a user inactive.  The row stays so historical
// registrations and results keep resolving.
func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET status=0 WHERE user_id=? AND status=1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

func scanUser(s rowScanner) (model.User, error) {
	var u model.User
	var updated sql.NullTime
	err := s.Scan(&u.UserID, &u.Email, &u.FullName, &u.PasswordHash, &u.PhoneNumber,
		&u.Age, &u.Address, &u.City, &u.State, &u.PreviousExperience,
		&u.Role, &u.Status, &u.CreatedAt, &updated)
	if err != nil {
		return model.User{}, err
	}
	if updated.Valid {
		t := updated.Time
		u.UpdatedAt = &t
	}
	return u, nil
}
