package models

import "time"

// StoreEntry is one key-value row of the persistence store. Value is nil when
// the section has never been populated, which export must preserve as null.
type StoreEntry struct {
	Name      string    `json:"name"       gorm:"type:varchar(191);primaryKey"`
	Value     *string   `json:"value"      gorm:"type:longtext"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StoreEntry) TableName() string { return "store_entries" }
