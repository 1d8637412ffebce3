package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/expenseflow/expense-backend-go/internal/handler/http/middleware"
	"github.com/expenseflow/expense-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth     AuthHandler
	Company  CompanyHandler
	User     UserHandler
	Expense  ExpenseHandler
	Approval ApprovalHandler
	Meta     MetaHandler
	Receipt  ReceiptHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, frontendURL string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "expenseflow"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", h.Auth.LoginWithGoogle)
				})
			})
		})

		// Public lookups for the signup form
		r.Route("/meta", func(r chi.Router) {
			r.Get("/countries", h.Meta.ListCountries)
			r.Get("/rates/{base}", h.Meta.GetRates)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/session", h.Auth.Session)

			r.Route("/companies/my", func(r chi.Router) {
				r.Get("/", h.Company.Get)
			})

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Patch("/{userID}", h.User.Update)
			})

			r.Route("/approval-rules", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.Approval.GetRule)
				r.Put("/", h.Approval.SaveRule)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", h.Expense.Submit)
				r.Get("/my", h.Expense.ListMine)
				r.Get("/{expenseID}", h.Expense.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Expense.ListCompany)
				})

				// Manager or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Post("/{expenseID}/approve", h.Approval.Approve)
					r.Post("/{expenseID}/reject", h.Approval.Reject)
				})
			})

			r.Route("/approvals", func(r chi.Router) {
				r.Use(middleware.RequireApprover)
				r.Get("/pending", h.Approval.ListPending)
			})

			r.Post("/receipts/scan", h.Receipt.Scan)
		})
	})

	return r
}
