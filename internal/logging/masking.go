// Package logging provides utilities for secure logging with data masking.
package logging

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaskHeader redacts sensitive header values based on header name.
// Returns the redacted value suitable for logging.
//
// Rules:
// - Password/secret headers: "[REDACTED]" (no partial reveal)
// - Token/API key headers: "****" + last4chars (e.g., "****ab3f")
// - Other headers: returned unchanged
func MaskHeader(name, value string) string {
	lowerName := strings.ToLower(name)

	if strings.Contains(lowerName, "password") ||
		strings.Contains(lowerName, "secret") {
		return "[REDACTED]"
	}

	if lowerName == "authorization" ||
		lowerName == "x-api-key" ||
		lowerName == "x-sink-key" {
		if len(value) < 4 {
			return "****"
		}
		return "****" + value[len(value)-4:]
	}

	return value
}

// SensitiveFields are the JSON body fields that are never logged in clear.
// Login and register bodies carry passwords; their responses carry tokens.
var SensitiveFields = []string{"password", "token"}

// MaskJSONBody redacts sensitive fields in a JSON body.
//
// Fields whose names appear in denylist (case-insensitive) are replaced with
// "[REDACTED]" at any nesting depth. A nil denylist masks SensitiveFields.
// Returns the masked JSON as bytes, or the original if parsing fails.
func MaskJSONBody(body []byte, denylist []string) []byte {
	if len(body) == 0 {
		return body
	}

	if denylist == nil {
		denylist = SensitiveFields
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		// Not JSON - return original
		return body
	}

	denyMap := make(map[string]bool, len(denylist))
	for _, field := range denylist {
		denyMap[strings.ToLower(field)] = true
	}

	masked := maskJSONValue(data, denyMap)

	result, err := json.Marshal(masked)
	if err != nil {
		return body
	}

	return result
}

// maskJSONValue recursively masks JSON values based on the denylist.
func maskJSONValue(value interface{}, deny map[string]bool) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{})
		for key, val := range v {
			if deny[strings.ToLower(key)] {
				result[key] = "[REDACTED]"
			} else {
				result[key] = maskJSONValue(val, deny)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = maskJSONValue(item, deny)
		}
		return result
	default:
		return value
	}
}

// FormatBinaryData formats binary data for logging.
// Returns a human-readable size indicator.
func FormatBinaryData(data []byte) string {
	return fmt.Sprintf("[BINARY: %d bytes]", len(data))
}
