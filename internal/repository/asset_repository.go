package repository

import (
	"context"
	"database/sql"

	"github.com/kalakriti/events-backend/internal/model"
)

// AssetRepo provides access to uploaded artwork records.  The file bytes
// live in object storage or on disk; the table only keeps the URL.
type AssetRepo struct{ DB *sql.DB }

func NewAssetRepo(db *sql.DB) *AssetRepo { return &AssetRepo{DB: db} }

const assetColumns = `asset_id, event_registration_id, asset_url, asset_name, create_dt`

// Create inserts an asset row pointing at an already-uploaded file.
func (r *AssetRepo) Create(ctx context.Context, registrationID, assetURL, assetName string) (model.Asset, error) {
	id := model.NewAssetID()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO assets (asset_id, event_registration_id, asset_url, asset_name) VALUES (?,?,?,?)`,
		id, registrationID, assetURL, assetName)
	if err != nil {
		return model.Asset{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches an asset by id.
func (r *AssetRepo) GetByID(ctx context.Context, id string) (model.Asset, error) {
	var a model.Asset
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE asset_id=? LIMIT 1`, id).
		Scan(&a.AssetID, &a.EventRegistrationID, &a.AssetURL, &a.AssetName, &a.CreateDt)
	if err == sql.ErrNoRows {
		return model.Asset{}, ErrNotFound
	}
	return a, err
}

// ListByRegistration returns the assets attached to one registration.
func (r *AssetRepo) ListByRegistration(ctx context.Context, registrationID string) ([]model.Asset, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE event_registration_id=? ORDER BY create_dt`, registrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []model.Asset
	for rows.Next() {
		var a model.Asset
		if err := rows.Scan(&a.AssetID, &a.EventRegistrationID, &a.AssetURL, &a.AssetName, &a.CreateDt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Delete removes an asset row.  The stored file is left behind; cleanup of
// orphaned objects is an offline concern.
func (r *AssetRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM assets WHERE asset_id=?`, id)
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
