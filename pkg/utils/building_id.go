package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateBuildingID creates a readable, globally unique building id.
// Format: {definitionID}-{8charHexUUID}, e.g. "house_small-a3f8e2b1"
func GenerateBuildingID(definitionID string) string {
	prefix := strings.ToLower(strings.TrimSpace(definitionID))
	if prefix == "" {
		prefix = "building"
	}
	return prefix + "-" + generateShortUUID()
}

// generateShortUUID returns the first 8 hex characters of a random UUID
func generateShortUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
