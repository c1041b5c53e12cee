package util

import (
	"encoding/json"
	"fmt"
	"os"

	"coderr-web/models"
)

// ReadOfferListResponseFromJSON loads an OfferListResponse from JSON on disk.
func ReadOfferListResponseFromJSON(filePath string) (*models.OfferListResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.OfferListResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OfferListResponse: %w", err)
	}
	return &resp, nil
}

// ReadProfilesFromJSON loads a slice of profiles from JSON on disk.
func ReadProfilesFromJSON(filePath string) ([]models.CurrentUser, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var profiles []models.CurrentUser
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profiles: %w", err)
	}
	return profiles, nil
}

// ReadBaseInfoFromJSON loads the marketplace statistics from JSON on disk.
func ReadBaseInfoFromJSON(filePath string) (*models.BaseInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var info models.BaseInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal BaseInfo: %w", err)
	}
	return &info, nil
}
