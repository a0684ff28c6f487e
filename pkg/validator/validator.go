package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError flattens binding errors into a single message that
// names every failing field, not just the first one.
func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

// MissingFields lists the field names that failed the "required" rule.
func MissingFields(err error) []string {
	var missing []string
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			if fieldError.Tag() == "required" {
				missing = append(missing, getFieldName(fieldError.Field()))
			}
		}
	}
	return missing
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Name":          "name",
		"Email":         "email",
		"Password":      "password",
		"FirstName":     "firstName",
		"LastName":      "lastName",
		"District":      "district",
		"Amphoe":        "amphoe",
		"Province":      "province",
		"Type":          "type",
		"CategoryID":    "categoryId",
		"SubCategoryID": "subCategoryId",
		"StartYear":     "startYear",
		"SigningDate":   "signingDate",
		"Level":         "level",
		"Content":       "content",
		"Summary":       "summary",
		"History":       "history",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
