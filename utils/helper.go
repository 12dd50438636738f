package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var invalidFilenameChars = regexp.MustCompile(`[\\/:"*?<>|]+`)

// SafeFilename replaces filesystem-illegal characters with underscores.
// Used for every segment of a generated document's name.
func SafeFilename(text string) string {
	return strings.TrimSpace(invalidFilenameChars.ReplaceAllString(text, "_"))
}

// SafeFilenameSegment additionally collapses spaces, for path segments
// that come from free-text fields (project name, client).
func SafeFilenameSegment(text string) string {
	return strings.ReplaceAll(SafeFilename(text), " ", "_")
}

func ProcessValidationErrors(err error) map[string]string {

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}
