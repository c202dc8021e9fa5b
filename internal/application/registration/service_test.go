package registration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-otp-auth/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

type mockIssuer struct{ mock.Mock }

func (m *mockIssuer) Issue(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// --- builder ---

func newService(us *mockUserStore, is *mockIssuer, ml *mockMailer) Service {
	return NewService(ServiceDeps{UserRepo: us, Verifier: is, Mailer: ml})
}

func validRequest() domain.RegisterRequest {
	return domain.RegisterRequest{
		Name:     "Alice",
		Email:    "a@x.com",
		Password: "secret123",
		Phone:    "5551234",
		Age:      30,
	}
}

// --- Register ---

func TestRegister_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	is := &mockIssuer{}
	ml := &mockMailer{}

	var created *domain.User
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
		Return(nil)
	is.On("Issue", mock.Anything, "a@x.com").Return("123456", nil)
	ml.On("SendEmail", "a@x.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "123456")
	})).Return(nil)

	svc := newService(us, is, ml)
	require.NoError(t, svc.Register(context.Background(), validRequest()))

	require.NotNil(t, created)
	assert.NotEmpty(t, created.UserID)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "a@x.com", created.Email)
	assert.False(t, created.EmailConfirmed)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))
	us.AssertExpectations(t)
	is.AssertExpectations(t)
	ml.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{UserID: "u1"}, nil)

	svc := newService(us, nil, nil)
	err := svc.Register(context.Background(), validRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.EqualError(t, err, "User with this email already exists")
	us.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegister_LookupOutageIsNotAFreeEmail(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("dynamo unavailable"))

	svc := newService(us, nil, nil)
	err := svc.Register(context.Background(), validRequest())

	// A directory outage must not be read as "email available".
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrConflict))
	us.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegister_BadDateOfBirth(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)

	req := validRequest()
	dob := "31-12-1990"
	req.DateOfBirth = &dob

	svc := newService(us, nil, nil)
	err := svc.Register(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	us.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegister_DirectoryPutFails(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo unavailable"))

	svc := newService(us, nil, nil)
	err := svc.Register(context.Background(), validRequest())
	require.Error(t, err)
}

func TestRegister_IssueFails_StillSuccess(t *testing.T) {
	us := &mockUserStore{}
	is := &mockIssuer{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.Anything).Return(nil)
	is.On("Issue", mock.Anything, "a@x.com").Return("", errors.New("dynamo unavailable"))

	svc := newService(us, is, ml)
	// The account was created; issuance failure does not roll it back.
	require.NoError(t, svc.Register(context.Background(), validRequest()))
	ml.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_EmailSendFails_StillSuccess(t *testing.T) {
	us := &mockUserStore{}
	is := &mockIssuer{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.Anything).Return(nil)
	is.On("Issue", mock.Anything, "a@x.com").Return("123456", nil)
	ml.On("SendEmail", "a@x.com", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := newService(us, is, ml)
	require.NoError(t, svc.Register(context.Background(), validRequest()))
}

// --- Resend ---

func TestResend_UserNotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)

	svc := newService(us, nil, nil)
	err := svc.Resend(context.Background(), "ghost@x.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.EqualError(t, err, "User not found")
}

func TestResend_LookupOutageIsNotUserNotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("dynamo unavailable"))

	svc := newService(us, nil, nil)
	err := svc.Resend(context.Background(), "a@x.com")

	// An outage propagates as-is; it must not claim the account is absent.
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.ErrorContains(t, err, "dynamo unavailable")
}

func TestResend_AlreadyVerified(t *testing.T) {
	us := &mockUserStore{}
	is := &mockIssuer{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{
		UserID:         "u1",
		Email:          "a@x.com",
		EmailConfirmed: true,
	}, nil)

	svc := newService(us, is, nil)
	err := svc.Resend(context.Background(), "a@x.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.EqualError(t, err, "Email is already verified")
	is.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestResend_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	is := &mockIssuer{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{
		UserID: "u1",
		Name:   "Alice",
		Email:  "a@x.com",
	}, nil)
	is.On("Issue", mock.Anything, "a@x.com").Return("654321", nil)
	// The resend mail greets with the email local-part, not the stored name.
	ml.On("SendEmail", "a@x.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "654321") && strings.Contains(body, "Hello a,")
	})).Return(nil)

	svc := newService(us, is, ml)
	require.NoError(t, svc.Resend(context.Background(), "a@x.com"))
	ml.AssertExpectations(t)
}

func TestResend_IssueFails(t *testing.T) {
	us := &mockUserStore{}
	is := &mockIssuer{}

	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{UserID: "u1"}, nil)
	is.On("Issue", mock.Anything, "a@x.com").Return("", errors.New("dynamo unavailable"))

	svc := newService(us, is, nil)
	require.Error(t, svc.Resend(context.Background(), "a@x.com"))
}

func TestResend_DeliveryFailureIsSurfaced(t *testing.T) {
	us := &mockUserStore{}
	is := &mockIssuer{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{UserID: "u1", Email: "a@x.com"}, nil)
	is.On("Issue", mock.Anything, "a@x.com").Return("654321", nil)
	ml.On("SendEmail", "a@x.com", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := newService(us, is, ml)
	err := svc.Resend(context.Background(), "a@x.com")

	// Unlike registration, resend reports delivery failure to the caller.
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDeliveryFailed))
	assert.EqualError(t, err, "Failed to send OTP email")
}
