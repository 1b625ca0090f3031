package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// BindingErrors flattens a binding failure into field -> violated rule, so
// API clients can highlight the offending inputs. Non-validation errors
// (malformed JSON and the like) return nil.
func BindingErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
