package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts the first failure
// into a 400 WebError.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return &WebError{
			Code:    400,
			Message: fmt.Sprintf("%s failed on '%s'", strings.ToLower(fe.Field()), fe.Tag()),
		}
	}

	return &WebError{Code: 400, Message: "Invalid request"}
}
