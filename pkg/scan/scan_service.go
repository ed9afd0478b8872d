package scan

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"pantrypal/domain"
	"pantrypal/internal/utils"
	"pantrypal/internal/utils/storage"
)

type (
	// ScanService reads a product photo and extracts what the add-item form
	// needs: barcode, printed expiry date, product name. The result is a
	// suggestion only; the caller still goes through normal item validation.
	ScanService interface {
		ScanItem(ctx context.Context, req domain.ScanItemRequest, userID string) (domain.ScanItemResponse, error)
	}

	scanService struct {
		s3 storage.AwsS3
	}

	extraction struct {
		ItemFound   bool   `json:"itemFound"`
		Barcode     string `json:"barcode"`
		ExpiryDate  string `json:"expiryDate"`
		ProductName string `json:"productName"`
	}
)

func NewScanService(s3 storage.AwsS3) ScanService {
	return &scanService{s3: s3}
}

func (s *scanService) ScanItem(ctx context.Context, req domain.ScanItemRequest, userID string) (domain.ScanItemResponse, error) {
	fileName := fmt.Sprintf("scan-%s-%s", userID, uuid.New().String())
	objectKey, err := s.s3.UploadFile(fileName, req.Image, "scans", storage.AllowImage...)
	if err != nil {
		return domain.ScanItemResponse{}, err
	}
	imageURL := s.s3.GetPublicLinkKey(objectKey)

	result, err := s.extractItemDetails(ctx, req.Image)
	if err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.ScanItemResponse{}, err
	}

	response := domain.ScanItemResponse{
		ItemFound:   result.ItemFound,
		Barcode:     result.Barcode,
		ProductName: result.ProductName,
		ImageURL:    imageURL,
	}

	// A date string the model invented must never reach the pantry; only a
	// real YYYY-MM-DD passes the boundary.
	if result.ExpiryDate != "" {
		if _, err := time.Parse("2006-01-02", result.ExpiryDate); err == nil {
			response.ExpiryDate = result.ExpiryDate
		}
	}

	return response, nil
}

func (s *scanService) extractItemDetails(ctx context.Context, imageFile *multipart.FileHeader) (extraction, error) {
	file, err := imageFile.Open()
	if err != nil {
		return extraction{}, err
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		return extraction{}, err
	}

	base64Image := base64.StdEncoding.EncodeToString(fileData)

	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return extraction{}, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return extraction{}, fmt.Errorf("GEMINI_MODEL environment variable not set")
	}

	mimeType := imageFile.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"

		ext := strings.ToLower(filepath.Ext(imageFile.Filename))
		switch ext {
		case ".png":
			mimeType = "image/png"
		case ".jpg", ".jpeg":
			mimeType = "image/jpeg"
		case ".gif":
			mimeType = "image/gif"
		case ".webp":
			mimeType = "image/webp"
		}
	}

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", geminiModel, geminiAPIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": "You are an expert at analyzing images of grocery products. " +
							"Analyze the provided image and respond ONLY with a valid JSON object containing exactly these fields: " +
							"'itemFound' (boolean), 'barcode' (string, the numerical sequence if a barcode is visible), " +
							"'expiryDate' (string in YYYY-MM-DD format if an expiry date is printed), " +
							"and 'productName' (string, the product's name from the label). " +
							"If the image does not contain a recognizable grocery item, set 'itemFound' to false and leave the other fields empty. " +
							"Do not include any explanations, markdown formatting, or extra text.",
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64Image,
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return extraction{}, err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return extraction{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return extraction{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return extraction{}, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return extraction{}, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return extraction{}, domain.ErrGeminiProcessingFailed
	}

	return parseExtraction(geminiResp.Candidates[0].Content.Parts[0].Text)
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// parseExtraction pulls the JSON object out of the model's answer, stripping
// markdown fences and any surrounding commentary.
func parseExtraction(responseText string) (extraction, error) {
	if match := jsonObjectPattern.FindString(responseText); match != "" {
		responseText = match
	}

	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
	}
	responseText = strings.TrimSpace(responseText)

	var result extraction
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return extraction{}, fmt.Errorf("failed to parse Gemini response: %v - Raw response: %s", err, responseText)
	}
	return result, nil
}
