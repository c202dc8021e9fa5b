package http

import (
	"github.com/go-otp-auth/internal/infrastructure/dynamo"
	"github.com/go-otp-auth/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo *dynamo.UserRepo
	OTPRepo  *dynamo.OTPRepo
	Mailer   smtp.Mailer
}
