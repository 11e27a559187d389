package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"readinglist/internal/entity"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("bookstatus", validateBookStatus)
}

func validateBookStatus(fl validator.FieldLevel) bool {
	return entity.ValidStatus(fl.Field().String())
}

// ValidateStruct checks the struct's validate tags and reports every failure
// as a field/message pair ready for an error response.
func ValidateStruct(s interface{}) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var details []ErrorDetail
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		tag := err.Tag()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "bookstatus":
			message = fmt.Sprintf("%s must be one of %q, %q, %q",
				field, entity.StatusUnread, entity.StatusInProgress, entity.StatusFinished)
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fieldName := strings.ToLower(field[:1]) + field[1:]
		details = append(details, ErrorDetail{
			Field:   fieldName,
			Message: message,
		})
	}

	return details
}
