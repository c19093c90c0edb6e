package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kalakriti/events-backend/internal/model"
)

// ResultRepo provides CRUD operations for published competition results.
type ResultRepo struct{ DB *sql.DB }

func NewResultRepo(db *sql.DB) *ResultRepo { return &ResultRepo{DB: db} }

const resultColumns = "result_id, name, user_id, score, remarks, category, `rank`, event_name, season, created_at, updated_at"

// NewResultInput carries the fields an admin supplies when publishing a result.
type NewResultInput struct {
	Name      string
	UserID    string
	Score     int
	Remarks   *string
	Category  string
	Rank      int
	EventName string
	Season    string
}

// Create inserts a result with a generated RES id and returns it.
func (r *ResultRepo) Create(ctx context.Context, in NewResultInput) (model.Result, error) {
	id := model.NewResultID()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO results (result_id, name, user_id, score, remarks, category, `rank`, event_name, season) VALUES (?,?,?,?,?,?,?,?,?)",
		id, in.Name, in.UserID, in.Score, in.Remarks, in.Category, in.Rank, in.EventName, in.Season)
	if err != nil {
		return model.Result{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a result by id.
func (r *ResultRepo) GetByID(ctx context.Context, id string) (model.Result, error) {
	res, err := scanResult(r.DB.QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM results WHERE result_id=? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.Result{}, ErrNotFound
	}
	return res, err
}

// ResultFilter narrows List results; zero values are ignored.
type ResultFilter struct {
	UserID    string
	EventName string
	Season    string
	Category  string
}

// List returns results matching the filter ordered by rank.
func (r *ResultRepo) List(ctx context.Context, f ResultFilter) ([]model.Result, error) {
	q := `SELECT ` + resultColumns + ` FROM results WHERE 1=1`
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
	if f.Category != "" {
		q += " AND category=?"
		args = append(args, f.Category)
	}
	q += " ORDER BY `rank`"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// ResultUpdate lists the mutable fields; nil pointers are skipped.
type ResultUpdate struct {
	Name     *string
	Score    *int
	Remarks  *string
	Category *string
	Rank     *int
}

// Update applies the non-nil fields and returns the stored row.
func (r *ResultRepo) Update(ctx context.Context, id string, upd ResultUpdate) (model.Result, error) {
	sets := []string{}
	args := []interface{}{}
	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *upd.Name)
	}
	if upd.Score != nil {
		sets = append(sets, "score=?")
		args = append(args, *upd.Score)
	}
	if upd.Remarks != nil {
		sets = append(sets, "remarks=?")
		args = append(args, *upd.Remarks)
	}
	if upd.Category != nil {
		sets = append(sets, "category=?")
		args = append(args, *upd.Category)
	}
	if upd.Rank != nil {
		sets = append(sets, "`rank`=?")
		args = append(args, *upd.Rank)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		`UPDATE results SET `+strings.Join(sets, ",")+` WHERE result_id=?`, args...)
	if err != nil {
		return model.Result{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a result.
func (r *ResultRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM results WHERE result_id=?`, id)
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

func scanResult(s rowScanner) (model.Result, error) {
	var res model.Result
	var updated sql.NullTime
	err := s.Scan(&res.ResultID, &res.Name, &res.UserID, &res.Score, &res.Remarks,
		&res.Category, &res.Rank, &res.EventName, &res.Season, &res.CreatedAt, &updated)
	if err != nil {
		return model.Result{}, err
	}
	if updated.Valid {
		t := updated.Time
		res.UpdatedAt = &t
	}
	return res, nil
}
