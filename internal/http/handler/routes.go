package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"internhub/docs"
	"internhub/internal/http/middleware"
	"internhub/internal/model"
	"internhub/internal/service"
)

// Dependencies are the services and collaborators the routes dispatch to.
type Dependencies struct {
	Documents    service.DocumentService
	Allocations  service.AllocationService
	Internships  service.InternshipService
	Applications service.ApplicationService
	Tokens       middleware.TokenValidator
	// Gatherer backs /metrics; nil falls back to the default registry.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse input, call a service, map errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, deps Dependencies) {
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", SwaggerUI())

	api := app.Group("/api/v1", middleware.Authenticate(deps.Tokens))

	staff := middleware.RequireRoles(model.RoleFaculty, model.RoleAdmin)
	students := middleware.RequireRoles(model.RoleStudent)
	publishers := middleware.RequireRoles(model.RoleFaculty, model.RoleCompany, model.RoleAdmin)

	api.Post("/allocations/auto/:studentId", staff, AutoAllocate(deps.Allocations))
	api.Post("/allocations/bulk", staff, BulkAllocate(deps.Allocations))
	api.Post("/allocations", staff, CreateAllocation(deps.Allocations))
	api.Get("/allocations/workloads", staff, ListWorkloads(deps.Allocations))
	api.Get("/allocations/unallocated", staff, ListUnallocated(deps.Allocations))
	api.Get("/faculty/:facultyId/students", staff, ListFacultyStudents(deps.Allocations))
	api.Get("/faculty/:facultyId/student-count", staff, FacultyStudentCount(deps.Allocations))

	api.Post("/documents", students, UploadDocument(deps.Documents))
	api.Get("/documents", ListDocuments(deps.Documents))
	api.Get("/documents/:id", GetDocument(deps.Documents))
	api.Delete("/documents/:id", DeleteDocument(deps.Documents))
	api.Get("/documents/:id/download", DownloadDocument(deps.Documents))
	api.Patch("/documents/:id/status", UpdateDocumentStatus(deps.Documents))
	api.Get("/documents/:id/feedback", ListDocumentFeedback(deps.Documents))

	api.Post("/internships", publishers, CreateInternship(deps.Internships))
	api.Get("/internships", ListInternships(deps.Internships))
	api.Get("/internships/:id", GetInternship(deps.Internships))
	api.Post("/internships/:id/applications", students, ApplyToInternship(deps.Applications))
	api.Get("/internships/:id/applications", ListInternshipApplications(deps.Applications))

	api.Get("/applications", students, ListMyApplications(deps.Applications))
	api.Get("/applications/:id", GetApplication(deps.Applications))
	api.Patch("/applications/:id/status", UpdateApplicationStatus(deps.Applications))
}

// SwaggerUI serves the generated API docs with the host and scheme the caller used.
func SwaggerUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
