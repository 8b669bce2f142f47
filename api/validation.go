// Package api provides the HTTP surface of the name-check pipeline.
package api

import (
	"strconv"
	"strings"

	"github.com/conflictcheck/namecheck/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSearchCriteria checks a name-check request's criteria.
func ValidateSearchCriteria(criteria model.SearchCriteria) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(criteria.Name) == "" {
		result.AddError("name", "Search name is required")
	}

	return result
}

// ValidateRecords checks an inline or uploaded record collection.
func ValidateRecords(records []model.ReferenceRecord) *ValidationResult {
	result := &ValidationResult{Valid: true}

	for i, record := range records {
		if strings.TrimSpace(record.Name) == "" {
			result.AddError("records", "Record "+strconv.Itoa(i)+" has no name")
		}
	}

	return result
}
