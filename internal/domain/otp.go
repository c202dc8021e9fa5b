package domain

import "time"

// EmailVerificationOTP is a single issued verification code.
// PK: otp_id (ULID). GSI email-otp_id-index: PK email, SK otp_id.
// ULIDs sort lexicographically by creation time, so a descending query
// on the index yields the newest code for an email first.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type EmailVerificationOTP struct {
	OTPID     string     `json:"id" dynamodbav:"otp_id"`
	Email     string     `json:"email" dynamodbav:"email"`
	Code      string     `json:"-" dynamodbav:"code"`
	CreatedAt time.Time  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64      `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	Used      bool       `json:"used" dynamodbav:"used"`
	UsedAt    *time.Time `json:"used_at,omitempty" dynamodbav:"used_at,omitempty"`
}

// Active reports whether the record can still be consumed at the given instant.
func (v *EmailVerificationOTP) Active(now time.Time) bool {
	return !v.Used && v.ExpiresAt > now.Unix()
}
