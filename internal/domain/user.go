package domain

import "time"

type User struct {
	UserID         string     `json:"id" dynamodbav:"user_id"`
	Name           string     `json:"name" dynamodbav:"name"`
	Email          string     `json:"email" dynamodbav:"email"`
	Phone          string     `json:"phone" dynamodbav:"phone"`
	Age            int        `json:"age" dynamodbav:"age"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty" dynamodbav:"date_of_birth,omitempty"`
	Gender         string     `json:"gender,omitempty" dynamodbav:"gender"`
	PasswordHash   string     `json:"-" dynamodbav:"password_hash"`
	EmailConfirmed bool       `json:"email_confirmed" dynamodbav:"email_confirmed"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6,max=100"`
	Phone       string  `json:"phone" validate:"required,max=15"`
	Age         int     `json:"age" validate:"gte=0,lte=120"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"` // YYYY-MM-DD
	Gender      *string `json:"gender" validate:"omitempty,max=10"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}
