package domain

import (
	"errors"
	"time"

	"pantrypal/pkg/expiry"
)

var (
	MessageSuccessAddPantryItem    = "pantry item added successfully"
	MessageSuccessDeletePantryItem = "pantry item removed successfully"
	MessageSuccessGetPantryItems   = "pantry items retrieved successfully"
	MessageSuccessGetPantryAlerts  = "pantry alerts retrieved successfully"

	MessageFailedAddPantryItem    = "failed to add pantry item"
	MessageFailedDeletePantryItem = "failed to remove pantry item"
	MessageFailedGetPantryItems   = "failed to retrieve pantry items"
	MessageFailedGetPantryAlerts  = "failed to retrieve pantry alerts"

	ErrItemNotFound       = errors.New("pantry item not found")
	ErrInvalidItemName    = errors.New("item name must be 1-100 characters")
	ErrInvalidShelfLife   = errors.New("shelf life must be between 1 and 3650 days")
	ErrUnauthorizedAccess = errors.New("unauthorized access to pantry item")
)

const (
	ItemNameMaxLength = 100
	ShelfLifeMinDays  = 1
	ShelfLifeMaxDays  = 3650
)

type (
	AddPantryItemRequest struct {
		Name          string `json:"name" validate:"required,max=100"`
		ShelfLifeDays int    `json:"shelf_life_days" validate:"required,min=1,max=3650"`
	}

	PantryItemResponse struct {
		ID            string        `json:"id"`
		Name          string        `json:"name"`
		ShelfLifeDays int           `json:"shelf_life_days"`
		AddedDate     time.Time     `json:"added_date"`
		ExpiryDate    time.Time     `json:"expiry_date"`
		RemainingDays int           `json:"remaining_days"`
		Status        expiry.Status `json:"status"`
		Label         string        `json:"label"`
	}

	PantryAlertsResponse struct {
		Alerts []PantryItemResponse `json:"alerts"`
		Total  int                  `json:"total"`
	}
)
