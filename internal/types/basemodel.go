package types

import (
	"time"
)

// BaseModel is embedded by all domain models that are persisted in the database.
// Any changes here should be reflected in the schema by running migrations.
type BaseModel struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func GetDefaultBaseModel() BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Metadata is a generic string map used for storing key-value pairs on
// records and on gateway objects
type Metadata map[string]string
