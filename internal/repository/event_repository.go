package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/kalakriti/events-backend/internal/model"
)

// EventRepo provides CRUD operations for competition events.  An event is a
// named contest within a season with a submission window.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = `event_id, event_name, season, start_date, end_date, created_at, updated_at`

// Create inserts an event with a generated EVT id and returns it.
func (r *EventRepo) Create(ctx context.Context, name, season, startDate, endDate string) (model.Event, error) {
	id := model.NewEventID()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO events (event_id, event_name, season, start_date, end_date) VALUES (?,?,?,?,?)`,
		id, name, season, startDate, endDate)
	if err != nil {
		return model.Event{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches an event by id.
func (r *EventRepo) GetByID(ctx context.Context, id string) (model.Event, error) {
	ev, err := scanEvent(r.DB.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE event_id=? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.Event{}, ErrNotFound
	}
	return ev, err
}

// EventFilter narrows List results; zero values are ignored.
type EventFilter struct {
	EventID   string
	EventName string
	Season    string
}

// List returns events matching the filter.
func (r *EventRepo) List(ctx context.Context, f EventFilter) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []interface{}{}
	if f.EventID != "" {
		q += " AND event_id=?"
		args = append(args, f.EventID)
	}
	if f.EventName != "" {
		q += " AND event_name LIKE ?"
		args = append(args, "%"+f.EventName+"%")
	}
	if f.Season != "" {
		q += " AND season LIKE ?"
		args = append(args, "%"+f.Season+"%")
	}
	q += " ORDER BY start_date"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// EventUpdate lists the mutable fields; nil pointers are skipped.
type EventUpdate struct {
	EventName *string
	Season    *string
	StartDate *string
	EndDate   *string
}

// Update applies the non-nil fields and returns the stored row.
func (r *EventRepo) Update(ctx context.Context, id string, upd EventUpdate) (model.Event, error) {
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
	if upd.StartDate != nil {
		sets = append(sets, "start_date=?")
		args = append(args, *upd.StartDate)
	}
	if upd.EndDate != nil {
		sets = append(sets, "end_date=?")
		args = append(args, *upd.EndDate)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		`UPDATE events SET `+strings.Join(sets, ",")+` WHERE event_id=?`, args...)
	if err != nil {
		return model.Event{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an event.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE event_id=?`, id)
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

func scanEvent(s rowScanner) (model.Event, error) {
	var ev model.Event
	var start, end time.Time // DATE columns arrive as time.Time with parseTime=true
	var updated sql.NullTime
	err := s.Scan(&ev.EventID, &ev.EventName, &ev.Season, &start, &end,
		&ev.CreatedAt, &updated)
	if err != nil {
		return model.Event{}, err
	}
	ev.StartDate = start.Format("2006-01-02")
	ev.EndDate = end.Format("2006-01-02")
	if updated.Valid {
		t := updated.Time
		ev.UpdatedAt = &t
	}
	return ev, nil
}
