package model

import "time"

// Asset mirrors the 'assets' table.  An asset is an uploaded artwork file
// attached to an event registration; AssetURL points at the S3 object or
// the local uploads directory depending on the configured driver.
type Asset struct {
	AssetID             string    `json:"asset_id"`
	EventRegistrationID string    `json:"event_registration_id"`
	AssetURL            string    `json:"asset_url"`
	AssetName           string    `json:"asset_name"`
	CreateDt            time.Time `json:"create_dt"`
}
