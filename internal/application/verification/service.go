package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-otp-auth/internal/domain"
	"github.com/go-otp-auth/internal/pkg/id"
	pkgotp "github.com/go-otp-auth/internal/pkg/otp"
)

// otpTTL is the validity window of an issued code.
const otpTTL = 10 * time.Minute

// Service issues email verification codes and consumes them.
//
// Issue returns the generated code; the caller owns delivery. Verify
// accepts a submitted code and, on success, marks the user's email
// confirmed. Wrong code, expired code, consumed code and unknown email
// all come back as the same ErrUnauthorized-wrapped error so callers
// cannot distinguish the rejection cause.
type Service interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) error
}

type otpStore interface {
	Insert(ctx context.Context, v *domain.EmailVerificationOTP) error
	FindActive(ctx context.Context, email, code string) (*domain.EmailVerificationOTP, error)
	MarkUsed(ctx context.Context, otpID string, usedAt time.Time) error
}

type userDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	otps   otpStore
	users  userDirectory
	mailer mailer
}

type ServiceDeps struct {
	OTPRepo  otpStore
	UserRepo userDirectory
	Mailer   mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		otps:   deps.OTPRepo,
		users:  deps.UserRepo,
		mailer: deps.Mailer,
	}
}

func (s *service) Issue(ctx context.Context, email string) (string, error) {
	code, err := pkgotp.Generate()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	rec := &domain.EmailVerificationOTP{
		OTPID:     id.New(),
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(otpTTL).Unix(),
		Used:      false,
	}
	if err := s.otps.Insert(ctx, rec); err != nil {
		return "", fmt.Errorf("persist otp: %w", err)
	}
	return code, nil
}

func (s *service) Verify(ctx context.Context, email, code string) error {
	rec, err := s.otps.FindActive(ctx, email, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Warn("invalid or expired OTP", "email", email)
			return domain.NewError(domain.ErrUnauthorized, "Invalid or expired OTP")
		}
		return err
	}
	if err := s.otps.MarkUsed(ctx, rec.OTPID, time.Now().UTC()); err != nil {
		if errors.Is(err, domain.ErrAlreadyUsed) {
			// Lost the race to a concurrent verification of the same code.
			slog.Warn("OTP consumed concurrently", "email", email, "otp_id", rec.OTPID)
			return domain.NewError(domain.ErrUnauthorized, "Invalid or expired OTP")
		}
		return err
	}

	// The code is consumed from here on. Directory or delivery failures
	// below are logged and do not undo consumption; the caller still
	// sees a successful verification.
	if u, err := s.users.GetByEmail(ctx, email); err != nil {
		slog.Warn("verified OTP without matching user", "email", email, "err", err)
	} else if err := s.users.Update(ctx, u.UserID, map[string]interface{}{"email_confirmed": true}); err != nil {
		slog.Warn("failed to mark email confirmed", "user_id", u.UserID, "err", err)
	}

	if err := s.mailer.SendEmail(email, welcomeSubject, welcomeEmailBody(localPart(email))); err != nil {
		slog.Warn("failed to send welcome email", "email", email, "err", err)
	}
	return nil
}

// localPart returns everything before the first '@'.
func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
