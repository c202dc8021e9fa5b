package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-otp-auth/internal/application/registration"
	"github.com/go-otp-auth/internal/application/verification"
	"github.com/go-otp-auth/internal/domain"
	"github.com/go-otp-auth/internal/pkg/validate"
)

// AuthHandler handles registration and email verification endpoints.
type AuthHandler struct {
	registration registration.Service
	verification verification.Service
}

func NewAuthHandler(reg registration.Service, ver verification.Service) *AuthHandler {
	return &AuthHandler{registration: reg, verification: ver}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Validation failed", validate.Messages(err))
		return
	}
	if err := h.registration.Register(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, "Registration successful! Please check your email for the verification OTP.")
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Validation failed", validate.Messages(err))
		return
	}
	if err := h.verification.Verify(r.Context(), req.Email, req.OTP); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, "Email verified successfully! You can now login.")
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.ResendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Validation failed", validate.Messages(err))
		return
	}
	if err := h.registration.Resend(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, "OTP sent successfully! Please check your email.")
}
