// Package enrollmentsystem предоставляет маршруты для основного приложения.
package enrollmentsystem

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/attendance/attendancecreate"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/attendance/attendancelist"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/bill/billlist"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/enrollment/enrollmentcreate"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/enrollment/enrollmentlist"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/health"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/subject/subjectcreate"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/subject/subjectlist"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/subject/subjectread"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/user/usercreate"
	"github.com/magabrotheeeer/enrollment-system/internal/http/handlers/user/userlist"
	"github.com/magabrotheeeer/enrollment-system/internal/http/middlewarectx"
	attendanceservice "github.com/magabrotheeeer/enrollment-system/internal/services/attendance"
	billingservice "github.com/magabrotheeeer/enrollment-system/internal/services/billing"
	subjectservice "github.com/magabrotheeeer/enrollment-system/internal/services/subject"
	userservice "github.com/magabrotheeeer/enrollment-system/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	userService *userservice.Service,
	subjectService *subjectservice.Service,
	attendanceService *attendanceservice.Service,
	billingService *billingservice.Service,
	pinger health.Pinger,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.RateLimitMiddleware(logger),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", login.New(logger, userService).ServeHTTP)

		r.Post("/users", usercreate.New(logger, userService).ServeHTTP)
		r.Get("/users", userlist.New(logger, userService).ServeHTTP)

		r.Post("/subjects", subjectcreate.New(logger, subjectService).ServeHTTP)
		r.Get("/subjects", subjectlist.New(logger, subjectService).ServeHTTP)
		r.Get("/subjects/{id}", subjectread.New(logger, subjectService).ServeHTTP)

		r.Post("/enrollments", enrollmentcreate.New(logger, billingService).ServeHTTP)
		r.Get("/enrollments", enrollmentlist.New(logger, billingService).ServeHTTP)

		r.Post("/attendance", attendancecreate.New(logger, attendanceService).ServeHTTP)
		r.Get("/attendance", attendancelist.New(logger, attendanceService).ServeHTTP)

		r.Get("/bills", billlist.New(logger, billingService).ServeHTTP)
		r.Post("/payments", paymentcreate.New(logger, billingService).ServeHTTP)

		r.Get("/health", health.New(logger, pinger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
