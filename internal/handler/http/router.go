package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/auth"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/service"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/health"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/middleware"
)

// RouterDeps bundles the dependencies needed to build the HTTP router.
type RouterDeps struct {
	AuthService        *service.AuthService
	PatientService     *service.PatientService
	AppointmentService *service.AppointmentService
	RecordService      *service.RecordService
	TokenManager       *auth.TokenManager
	HealthHandler      *health.Handler
	Logger             *slog.Logger
	CORS               CORSConfig
	StaticDir          string
}

// NewRouter creates a chi router with all routes registered. Route paths and
// response shapes match what the frontend expects.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(deps.CORS))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("hospital"))

	// Health check and metrics endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Token verifier bridging the middleware to the token manager.
	verify := func(token string) (*middleware.Identity, error) {
		claims, err := deps.TokenManager.Verify(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.Logger)
	userHandler := NewUserHandler(deps.AuthService, deps.Logger)
	patientHandler := NewPatientHandler(deps.PatientService, deps.Logger)
	appointmentHandler := NewAppointmentHandler(deps.AppointmentService, deps.Logger)
	recordHandler := NewRecordHandler(deps.RecordService, deps.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public auth endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(verify))

			r.Put("/users/profile", userHandler.UpdateProfile)

			// Account administration
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))

				r.Get("/users", userHandler.List)
				r.Delete("/users/{id}", userHandler.Delete)
			})

			// Clinical data is restricted to staff.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleDoctor, domain.RoleAdmin))

				r.Get("/patients", patientHandler.List)
				r.Post("/patients", patientHandler.Create)
				r.Put("/patients/{id}", patientHandler.Update)
				r.Delete("/patients/{id}", patientHandler.Delete)

				r.Get("/records", recordHandler.List)
				r.Post("/records", recordHandler.Create)
				r.Put("/records/{id}", recordHandler.Update)
				r.Delete("/records/{id}", recordHandler.Delete)
			})

			// Appointments are open to any authenticated user, so patients
			// can book and review their own visits.
			r.Get("/appointments", appointmentHandler.List)
			r.Post("/appointments", appointmentHandler.Create)
			r.Put("/appointments/{id}", appointmentHandler.Update)
			r.Delete("/appointments/{id}", appointmentHandler.Delete)
		})
	})

	// Serve the built frontend for everything else.
	if deps.StaticDir != "" {
		spa := NewSPAHandler(deps.StaticDir)
		r.NotFound(spa.ServeHTTP)
	}

	return r
}
