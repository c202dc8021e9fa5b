package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-otp-auth/internal/application/registration"
	"github.com/go-otp-auth/internal/application/verification"
	"github.com/go-otp-auth/internal/config"
	"github.com/go-otp-auth/internal/transport/http/handler"
	appmiddleware "github.com/go-otp-auth/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second with a burst of 10 on the public auth endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verificationSvc := verification.NewService(verification.ServiceDeps{
		OTPRepo:  deps.OTPRepo,
		UserRepo: deps.UserRepo,
		Mailer:   deps.Mailer,
	})
	registrationSvc := registration.NewService(registration.ServiceDeps{
		UserRepo: deps.UserRepo,
		Verifier: verificationSvc,
		Mailer:   deps.Mailer,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(registrationSvc, verificationSvc)

	r.Get("/health-check/{action}", healthH.Ping)

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(sensitiveRL.Limit)
		r.Post("/register", authH.Register)
		r.Post("/verify-otp", authH.VerifyOTP)
		r.Post("/resend-otp", authH.ResendOTP)
	})

	return r
}
