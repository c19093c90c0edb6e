package repository

import (
	"context"
	"database/sql"

	"github.com/kalakriti/events-backend/internal/model"
)

// ContactRepo stores messages submitted through the public contact form.
type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

const contactColumns = `id, name, email, phone_number, subject, message, created_at, updated_at`

// Create inserts a contact message and returns it with the generated id.
func (r *ContactRepo) Create(ctx context.Context, name, email string, phone *string, subject, message string) (model.ContactMessage, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO contact_us (name, email, phone_number, subject, message) VALUES (?,?,?,?,?)`,
		name, email, phone, subject, message)
	if err != nil {
		return model.ContactMessage{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ContactMessage{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one contact message.
func (r *ContactRepo) GetByID(ctx context.Context, id uint64) (model.ContactMessage, error) {
	m, err := scanContact(r.DB.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contact_us WHERE id=? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.ContactMessage{}, ErrNotFound
	}
	return m, err
}

// List returns all contact messages, newest first.
func (r *ContactRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contact_us ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.ContactMessage
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Delete removes a contact message.
func (r *ContactRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contact_us WHERE id=?`, id)
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

func scanContact(s rowScanner) (model.ContactMessage, error) {
	var m model.ContactMessage
	var updated sql.NullTime
	err := s.Scan(&m.ID, &m.Name, &m.Email, &m.PhoneNumber, &m.Subject, &m.Message,
		&m.CreatedAt, &updated)
	if err != nil {
		return model.ContactMessage{}, err
	}
	if updated.Valid {
		t := updated.Time
		m.UpdatedAt = &t
	}
	return m, nil
}
