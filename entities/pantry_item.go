package entities

import (
	"time"

	"github.com/google/uuid"
)

// PantryItem is one independent row per item, so concurrent adds and removes
// from multiple devices never overwrite each other's writes. Items are
// immutable after creation except for deletion; expiry status is derived on
// every read, never stored.
type PantryItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID `gorm:"index" json:"user_id"`
	Name          string    `json:"name"`
	ShelfLifeDays int       `json:"shelf_life_days"`
	AddedDate     time.Time `json:"added_date"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
