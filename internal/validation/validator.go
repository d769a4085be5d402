// Package validation holds the pure input validators guarding session fields
// before they reach the service layer. The storage layer uses parameterized
// queries; these checks are a second, independent barrier.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/pkg/apperror"
)

const (
	DefaultTitle = "New Chat Session"

	MinTitleLength     = 1
	MaxTitleLength     = 500
	MaxUserIdLength    = 255
	MaxMetadataSize    = 10000 // bytes, serialized
	MaxMetadataKeyLen  = 100
	MaxPaginationLimit = 100
)

// Heuristic SQL-injection patterns, matched case-insensitively against titles.
var sqlInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\bDROP\b|\bDELETE\b|\bINSERT\b|\bUPDATE\b|\bSELECT\b).*\bFROM\b`),
	regexp.MustCompile(`--`),
	regexp.MustCompile(`(?i);.*(\bDROP\b|\bDELETE\b)`),
	regexp.MustCompile(`(?i)\bEXEC\b|\bEXECUTE\b`),
	regexp.MustCompile(`(?i)\bUNION\b.*\bSELECT\b`),
}

var userIdPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-@.]+$`)

// ValidateTitle trims and checks a session title, returning the default title
// for an absent or empty value.
func ValidateTitle(title *string, fieldName string) (string, error) {
	if title == nil || *title == "" {
		return DefaultTitle, nil
	}

	trimmed := strings.TrimSpace(*title)

	if len(trimmed) < MinTitleLength {
		return "", apperror.Validation(
			fmt.Sprintf("%s is too short", fieldName),
			fmt.Sprintf("%s must be at least %d character", fieldName, MinTitleLength),
		)
	}

	if len([]rune(trimmed)) > MaxTitleLength {
		return "", apperror.Validation(
			fmt.Sprintf("%s is too long", fieldName),
			fmt.Sprintf("%s must not exceed %d characters", fieldName, MaxTitleLength),
		)
	}

	for _, r := range trimmed {
		if !unicode.IsPrint(r) {
			return "", apperror.Validation(
				fmt.Sprintf("%s contains invalid characters", fieldName),
				"Only printable characters are allowed",
			)
		}
	}

	for _, pattern := range sqlInjectionPatterns {
		if pattern.MatchString(trimmed) {
			return "", apperror.Validation(
				fmt.Sprintf("%s contains potentially unsafe content", fieldName),
				"Please use a different title",
			)
		}
	}

	return trimmed, nil
}

// ValidateUserId trims and checks a user identifier. A nil or blank value is
// legal unless required is set; the restricted character set keeps identifiers
// safe for filtering.
func ValidateUserId(userId *string, required bool) (*string, error) {
	if userId == nil {
		if required {
			return nil, apperror.Validation("user_id is required", "User ID must be provided")
		}
		return nil, nil
	}

	trimmed := strings.TrimSpace(*userId)

	if trimmed == "" {
		if required {
			return nil, apperror.Validation("user_id cannot be empty", "User ID must not be blank")
		}
		return nil, nil
	}

	if len(trimmed) > MaxUserIdLength {
		return nil, apperror.Validation(
			"user_id is too long",
			fmt.Sprintf("User ID must not exceed %d characters", MaxUserIdLength),
		)
	}

	if !userIdPattern.MatchString(trimmed) {
		return nil, apperror.Validation(
			"user_id contains invalid characters",
			"User ID can only contain letters, numbers, dash, underscore, @ and dot",
		)
	}

	return &trimmed, nil
}

// ValidateStatus normalizes a status to lowercase and checks enum membership.
// A nil status passes through untouched.
func ValidateStatus(status *string) (*string, error) {
	if status == nil {
		return nil, nil
	}

	normalized := strings.ToLower(strings.TrimSpace(*status))

	for _, allowed := range entity.AllowedStatuses {
		if normalized == allowed {
			return &normalized, nil
		}
	}

	return nil, apperror.Validation(
		"Invalid status value",
		fmt.Sprintf("Status must be one of: %s", strings.Join(entity.AllowedStatuses, ", ")),
	)
}

// ValidateMetadata checks the serialized size, key lengths and value types of
// a metadata map. The map is returned unchanged when every entry passes.
func ValidateMetadata(metadata map[string]interface{}) (map[string]interface{}, error) {
	if metadata == nil {
		return nil, nil
	}

	serialized, err := json.Marshal(metadata)
	if err != nil {
		return nil, apperror.Validation("Invalid metadata format", "Metadata must be JSON-serializable")
	}

	if len(serialized) > MaxMetadataSize {
		return nil, apperror.Validation(
			"Metadata is too large",
			fmt.Sprintf("Metadata must not exceed %d bytes (10KB)", MaxMetadataSize),
		)
	}

	for key, value := range metadata {
		if len(key) > MaxMetadataKeyLen {
			return nil, apperror.Validation(
				"Metadata key is too long",
				fmt.Sprintf("Metadata key '%s' exceeds %d characters", key, MaxMetadataKeyLen),
			)
		}

		if !isAllowedMetadataValue(value) {
			return nil, apperror.Validation(
				"Invalid metadata value type",
				fmt.Sprintf("Metadata value for key '%s' has unsupported type. "+
					"Allowed: string, number, bool, null, list, map", key),
			)
		}
	}

	return metadata, nil
}

func isAllowedMetadataValue(value interface{}) bool {
	switch value.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number,
		[]interface{}, map[string]interface{}:
		return true
	default:
		return false
	}
}

// ValidatePagination checks limit/offset bounds and returns the pair unchanged.
func ValidatePagination(limit, offset int) (int, int, error) {
	if limit < 1 {
		return 0, 0, apperror.Validation("Invalid limit value", "Limit must be at least 1")
	}

	if limit > MaxPaginationLimit {
		return 0, 0, apperror.Validation("Limit too large",
			fmt.Sprintf("Limit must not exceed %d", MaxPaginationLimit))
	}

	if offset < 0 {
		return 0, 0, apperror.Validation("Invalid offset value", "Offset must be non-negative")
	}

	return limit, offset, nil
}
