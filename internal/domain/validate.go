package domain

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate is safe for concurrent use.
var validate = validator.New()

// Field labels used in "<field> input invalid" messages. Create reports an
// invalid email as "mail"; update reports it as "email".
const (
	FieldName          = "name"
	FieldPassword      = "password"
	FieldEmailOnCreate = "mail"
	FieldEmailOnUpdate = "email"
	FieldID            = "id"
)

// ValidationResult is the outcome of a validator run.
type ValidationResult struct {
	Code    ErrorCode
	Message string
}

// OK reports whether validation passed.
func (r ValidationResult) OK() bool {
	return r.Code == NoError
}

func valid() ValidationResult {
	return ValidationResult{Code: NoError}
}

func invalid(field string) ValidationResult {
	return ValidationResult{Code: InvalidInput, Message: InvalidInputMessage(field)}
}

// IsValidEmail reports whether s is a syntactically valid email address.
func IsValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// ValidateCreate checks a create payload. Fields are checked in the order
// name, email, password and the first failure is returned.
func ValidateCreate(in UserInput) ValidationResult {
	if in.Name == "" || in.NonString["name"] {
		return invalid(FieldName)
	}
	if in.NonString["email"] || !IsValidEmail(in.Email) {
		return invalid(FieldEmailOnCreate)
	}
	if in.Password == "" || in.NonString["password"] {
		return invalid(FieldPassword)
	}
	return valid()
}

// ValidateUpdate checks an update payload. Every field is optional and an
// empty value counts as absent; a present field must satisfy the same rule
// as on create. Order and short-circuiting match ValidateCreate.
func ValidateUpdate(in UserInput) ValidationResult {
	if in.NonString["name"] {
		return invalid(FieldName)
	}
	if in.NonString["email"] || (in.Email != "" && !IsValidEmail(in.Email)) {
		return invalid(FieldEmailOnUpdate)
	}
	if in.NonString["password"] {
		return invalid(FieldPassword)
	}
	return valid()
}
