package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kalakriti/events-backend/internal/model"
)

// RegistrationRepo provides CRUD operations for event registrations.  The
// payment flow inserts rows through CreateTx inside its own transaction;
// the direct (unpaid) flow goes through Create.
type RegistrationRepo struct{ DB *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{DB: db} }

const registrationColumns = `event_registration_id, user_id, event_name, season, artwork_count, registration_status, created_dt, updated_dt`

// Create inserts a registration with the given status and returns the
// stored row.  Status must be one of the model.Registration* constants.
func (r *RegistrationRepo) Create(ctx context.Context, userID, eventName, season string, artworkCount int, status string) (model.EventRegistration, error) {
	id := model.NewRegistrationID()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO event_registrations (event_registration_id, user_id, event_name, season, artwork_count, registration_status) VALUES (?,?,?,?,?,?)`,
		id, userID, eventName, season, artworkCount, status)
	if err != nil {
		return model.EventRegistration{}, err
	}
	return r.GetByID(ctx, id)
}

// CreateTx is like Create but runs inside the caller's transaction.  The row
// is read back within the same transaction so the caller sees timestamps
// before committing.
func (r *RegistrationRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID, eventName, season string, artworkCount int, status string) (model.EventRegistration, error) {
	id := model.NewRegistrationID()
	_, err := tx.ExecContext(ctx,
		`INSERT INTO event_registrations (event_registration_id, user_id, event_name, season, artwork_count, registration_status) VALUES (?,?,?,?,?,?)`,
		id, userID, eventName, season, artworkCount, status)
	if err != nil {
		return model.EventRegistration{}, err
	}
	reg, err := scanRegistration(tx.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM event_registrations WHERE event_registration_id=?`, id))
	if err != nil {
		return model.EventRegistration{}, err
	}
	return reg, nil
}

// GetByID fetches a registration by id.
func (r *RegistrationRepo) GetByID(ctx context.Context, id string) (model.EventRegistration, error) {
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM event_registrations WHERE event_registration_id=? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.EventRegistration{}, ErrNotFound
	}
	return reg, err
}

// RegistrationFilter narrows List results; zero values are ignored.
type RegistrationFilter struct {
	UserID    string
	EventName string
	Season    string
	Status    string
}

// List returns registrations matching the filter, newest first.
func (r *RegistrationRepo) List(ctx context.Context, f RegistrationFilter) ([]model.EventRegistration, error) {
	q := `SELECT ` + registrationColumns + ` FROM event_registrations WHERE 1=1`
	args := []interface{}{}
	if f.UserID != "" {
		q += " AND user_id=?"
		args = append(args, f.UserID)
	}
	if f.EventName != "" {
		q += " AND event_name LIKE ?"
		args = append(args, "%"+f.EventName+"%")
	}
	if f.Season != "" {
		q += " AND season LIKE ?"
		args = append(args, "%"+f.Season+"%")
	}
	if f.Status != "" {
		q += " AND registration_status=?"
		args = append(args, f.Status)
	}
	q += " ORDER BY created_dt DESC"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []model.EventRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// RegistrationUpdate lists the mutable fields; nil pointers are skipped.
type RegistrationUpdate struct {
	EventName          *string
	Season             *string
	ArtworkCount       *int
	RegistrationStatus *string
}

// Update applies the non-nil fields and returns the stored row.
func (r *RegistrationRepo) Update(ctx context.Context, id string, upd RegistrationUpdate) (model.EventRegistration, error) {
	sets := []string{}
	args := []interface{}{}
	if upd.EventName != nil {
		sets = append(sets, "event_name=?")
		args = append(args, *upd.EventName)
	}
	if upd.Season != nil {
		sets = append(sets, "season=?")
		args = append(args, *upd.Season)
	}
	if upd.ArtworkCount != nil {
		sets = append(sets, "artwork_count=?")
		args = append(args, *upd.ArtworkCount)
	}
	if upd.RegistrationStatus != nil {
		sets = append(sets, "registration_status=?")
		args = append(args, *upd.RegistrationStatus)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		`UPDATE event_registrations SET `+strings.Join(sets, ",")+` WHERE event_registration_id=?`, args...)
	if err != nil {
		return model.EventRegistration{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a registration row outright.  Unlike users, registrations
// have no soft-delete state in the original data model.
func (r *RegistrationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM event_registrations WHERE event_registration_id=?`, id)
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

func scanRegistration(s rowScanner) (model.EventRegistration, error) {
	var reg model.EventRegistration
	var updated sql.NullTime
	err := s.Scan(&reg.EventRegistrationID, &reg.UserID, &reg.EventName, &reg.Season,
		&reg.ArtworkCount, &reg.RegistrationStatus, &reg.CreatedDt, &updated)
	if err != nil {
		return model.EventRegistration{}, err
	}
	if updated.Valid {
		t := updated.Time
		reg.UpdatedDt = &t
	}
	return reg, nil
}
