package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessScanItem = "item photo analyzed successfully"
	MessageFailedScanItem  = "failed to analyze item photo"

	ErrNoItemInImage      = errors.New("no recognizable item found in image")
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrInvalidExpiryDate  = errors.New("invalid expiry date")
)

type (
	ScanItemRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	// ScanItemResponse carries whatever the model could read off the
	// packaging. ExpiryDate is only populated when it parsed as a real
	// YYYY-MM-DD date; a malformed model answer never reaches the caller.
	ScanItemResponse struct {
		ItemFound   bool   `json:"item_found"`
		Barcode     string `json:"barcode,omitempty"`
		ExpiryDate  string `json:"expiry_date,omitempty"`
		ProductName string `json:"product_name,omitempty"`
		ImageURL    string `json:"image_url,omitempty"`
	}
)
