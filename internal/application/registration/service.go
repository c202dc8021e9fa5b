package registration

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-otp-auth/internal/domain"
	"github.com/go-otp-auth/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// Service owns the registration and OTP-resend flows.
//
// Register reports success once the account exists in the directory;
// OTP issuance and email delivery after that point are best-effort.
// Resend is stricter: it surfaces delivery failure to the caller.
type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) error
	Resend(ctx context.Context, email string) error
}

type userDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
}

// issuer is the verification engine's issuance side.
type issuer interface {
	Issue(ctx context.Context, email string) (string, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	users    userDirectory
	verifier issuer
	mailer   mailer
}

type ServiceDeps struct {
	UserRepo userDirectory
	Verifier issuer
	Mailer   mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:    deps.UserRepo,
		verifier: deps.Verifier,
		mailer:   deps.Mailer,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) error {
	// Only a confirmed absence lets registration proceed; a directory
	// outage must not be mistaken for a free email.
	switch _, err := s.users.GetByEmail(ctx, req.Email); {
	case err == nil:
		return domain.NewError(domain.ErrConflict, "User with this email already exists")
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	var dob *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		t, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return domain.NewError(domain.ErrBadRequest, "dateOfBirth must be in YYYY-MM-DD format")
		}
		dob = &t
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:         id.New(),
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Age:            req.Age,
		DateOfBirth:    dob,
		PasswordHash:   string(hash),
		EmailConfirmed: false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.Gender != nil {
		u.Gender = *req.Gender
	}
	if err := s.users.Put(ctx, u); err != nil {
		return err
	}

	// The account exists from here on; OTP issuance and delivery do not
	// roll it back and the caller still sees a successful registration.
	code, err := s.verifier.Issue(ctx, req.Email)
	if err != nil {
		slog.Warn("failed to issue verification OTP", "email", req.Email, "err", err)
		return nil
	}
	if err := s.mailer.SendEmail(req.Email, otpSubject, otpEmailBody(req.Name, code)); err != nil {
		slog.Warn("failed to send OTP email", "email", req.Email, "err", err)
	}
	return nil
}

func (s *service) Resend(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewError(domain.ErrNotFound, "User not found")
		}
		return err
	}
	if u.EmailConfirmed {
		return domain.NewError(domain.ErrConflict, "Email is already verified")
	}

	// Older outstanding codes stay valid; verification prefers the
	// newest match, so they merely go stale.
	code, err := s.verifier.Issue(ctx, email)
	if err != nil {
		return err
	}
	if err := s.mailer.SendEmail(email, otpSubject, otpEmailBody(localPart(email), code)); err != nil {
		slog.Warn("failed to resend OTP email", "email", email, "err", err)
		return domain.NewError(domain.ErrDeliveryFailed, "Failed to send OTP email")
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
