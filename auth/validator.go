package auth

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"chat-arena/errors"
)

var validate = validator.New()

type RegisterRequest struct {
	Username string `validate:"required,min=3,max=24,alphanum"`
	Password string `validate:"required,min=8,max=72"`
}

// ValidateRegister checks business rules before any expensive cryptographic operation.
func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range fieldErrs {
				if fieldErr.Field() == "Username" {
					return fmt.Errorf("%w: %v", errors.ErrInvalidUsername, fieldErr)
				}
			}
		}
		return fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}
	return nil
}
