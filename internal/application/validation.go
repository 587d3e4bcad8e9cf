package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateBaseName checks that name can be used as the base directory:
// non-empty, a single path segment, not "." or "..".
func ValidateBaseName(name string) error {
	if err := ValidateRequired("baseName", name); err != nil {
		return err
	}
	if strings.ContainsAny(name, `/\`) {
		return &ValidationError{
			Field:   "baseName",
			Message: fmt.Sprintf("must not contain path separators: %q", name),
		}
	}
	if name == "." || name == ".." {
		return &ValidationError{
			Field:   "baseName",
			Message: fmt.Sprintf("invalid name: %q", name),
		}
	}
	if name != strings.TrimSpace(name) {
		return &ValidationError{
			Field:   "baseName",
			Message: fmt.Sprintf("must not start or end with whitespace: %q", name),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "baseName" -> "base directory name")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"baseName":   "base directory name",
		"quarantine": "quarantine path",
		"source":     "source path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}
