package serverutils

import (
	"doc-chat-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks the struct-level constraints (required, max length)
// declared on a request DTO's validate tags.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return apperror.Validation("Invalid request payload", err.Error())
	}
	return nil
}
