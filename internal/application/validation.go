package application

import (
	"fmt"
	"strings"

	"focusboard/internal/domain"
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

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "tabID" -> "tab ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"tabID":    "tab ID",
		"noteID":   "note ID",
		"parentID": "parent ID",
		"name":     "name",
		"title":    "title",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateID checks that an entity ID was assigned by the backing store
func ValidateID(fieldName string, id int64) error {
	if id <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be positive, got: %d", formatFieldName(fieldName), id),
		}
	}
	return nil
}

// ValidateChildParent checks that parent may own child notes
func ValidateChildParent(parent domain.Note) error {
	switch {
	case !parent.IsCategorical():
		return &ChildError{ParentID: parent.ID, Reason: "only categorical notes have children"}
	case !parent.IsTopLevel():
		return &ChildError{ParentID: parent.ID, Reason: "notes nest one level deep"}
	}
	return nil
}
