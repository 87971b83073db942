package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateCalculationID creates a standardized, human-readable calculation ID.
// Format: {operation}-{goodWithoutSpaces}-{8charHexUUID}
//
// Example:
//   - Input: operation="chain", good="Work Clothes"
//   - Output: "chain-Work_Clothes-a3f8e2b1"
//
// The IDs tag every log line of one calculation so that a report can be
// traced back to the request that produced it.
func GenerateCalculationID(operation, good string) string {
	return operation + "-" + sanitizeGoodName(good) + "-" + generateShortUUID()
}

// sanitizeGoodName replaces whitespace runs with underscores
//   - "Work Clothes" -> "Work_Clothes"
//   - "  Beer " -> "Beer"
func sanitizeGoodName(good string) string {
	return strings.Join(strings.Fields(good), "_")
}

// generateShortUUID creates an 8-character hex string from a UUID.
// This provides sufficient uniqueness while keeping IDs compact.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
