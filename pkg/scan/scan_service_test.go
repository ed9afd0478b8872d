package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtraction(t *testing.T) {
	t.Run("plain JSON object", func(t *testing.T) {
		result, err := parseExtraction(`{"itemFound":true,"barcode":"5012345678900","expiryDate":"2024-12-01","productName":"Whole Milk"}`)
		require.NoError(t, err)
		assert.True(t, result.ItemFound)
		assert.Equal(t, "5012345678900", result.Barcode)
		assert.Equal(t, "2024-12-01", result.ExpiryDate)
		assert.Equal(t, "Whole Milk", result.ProductName)
	})

	t.Run("markdown fenced object", func(t *testing.T) {
		result, err := parseExtraction("```json\n{\"itemFound\":true,\"productName\":\"Butter\"}\n```")
		require.NoError(t, err)
		assert.True(t, result.ItemFound)
		assert.Equal(t, "Butter", result.ProductName)
	})

	t.Run("nothing recognizable in image", func(t *testing.T) {
		result, err := parseExtraction(`{"itemFound":false,"barcode":"","expiryDate":"","productName":""}`)
		require.NoError(t, err)
		assert.False(t, result.ItemFound)
		assert.Empty(t, result.ProductName)
	})

	t.Run("prose without JSON is an error", func(t *testing.T) {
		_, err := parseExtraction("I could not identify any product in this image.")
		assert.Error(t, err)
	})
}

func TestExpiryDateBoundaryValidation(t *testing.T) {
	// Mirrors the check in ScanItem: only real YYYY-MM-DD dates may pass the
	// boundary toward the add-item form.
	for _, malformed := range []string{"12/01/2024", "2024-13-40", "soon", "2024-1-1"} {
		_, err := time.Parse("2006-01-02", malformed)
		assert.Error(t, err, "%q must not parse", malformed)
	}

	_, err := time.Parse("2006-01-02", "2024-12-01")
	assert.NoError(t, err)
}
