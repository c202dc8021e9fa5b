package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

// Struct validates the given struct using its validate tags.
func Struct(s interface{}) error {
	return v.Struct(s)
}

// Messages converts a validation error into human-readable field-level
// messages for the response envelope. Non-validator errors yield a single
// generic message.
func Messages(err error) []string {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"invalid request"}
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
	}
	return msgs
}
