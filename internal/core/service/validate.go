package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/blogosphere/blog/internal/core/domain"
)

var validate = validator.New()

// fieldMessages holds the user-visible message for each validated field,
// keyed by struct namespace.
var fieldMessages = map[string]string{
	"PostInput.Title":      "Title is required.",
	"CommentInput.Body":    "Comment content is required.",
	"Credentials.Username": "Username is required.",
	"Credentials.Password": "Password is required.",
}

// validateInput checks the struct tags of in and converts the first failure
// into a *domain.ValidationError.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}

	fe := ve[0]
	msg, ok := fieldMessages[fe.StructNamespace()]
	if !ok {
		msg = fmt.Sprintf("%s failed validation (%s).", fe.Field(), fe.Tag())
	}
	return &domain.ValidationError{Field: fe.Field(), Message: msg}
}
