package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"qaportal/internal/service"
)

// Services bundles the service layer for route registration.
type Services struct {
	Documents     service.DocumentService
	Notifications service.NotificationService
	Users         service.UserService
	Programs      service.ProgramService
	Departments   service.DepartmentService
	Activity      service.ActivityService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay free of business logic; they parse, delegate and translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	docs := app.Group("/documents")
	docs.Get("/", ListDocuments(svcs.Documents))
	docs.Post("/", UploadDocument(svcs.Documents))
	docs.Get("/:id", GetDocument(svcs.Documents))
	docs.Get("/:id/download", DownloadDocument(svcs.Documents))
	docs.Get("/:id/preview", PreviewDocument(svcs.Documents))
	docs.Get("/:id/history", DocumentHistory(svcs.Documents))
	docs.Patch("/:id/status", UpdateDocumentStatus(svcs.Documents))
	docs.Delete("/:id", DeleteDocument(svcs.Documents))

	notifs := app.Group("/notifications")
	notifs.Get("/", ListNotifications(svcs.Notifications))
	notifs.Get("/unread-count", UnreadNotificationCount(svcs.Notifications))
	notifs.Patch("/:id/read", MarkNotificationRead(svcs.Notifications))
	notifs.Post("/read-all", MarkAllNotificationsRead(svcs.Notifications))

	users := app.Group("/users")
	users.Get("/", ListUsers(svcs.Users))
	users.Post("/", CreateUser(svcs.Users))
	users.Get("/:id", GetUser(svcs.Users))
	users.Delete("/:id", DeleteUser(svcs.Users))

	programs := app.Group("/programs")
	programs.Get("/", ListPrograms(svcs.Programs))
	programs.Post("/", CreateProgram(svcs.Programs))
	programs.Get("/:id", GetProgram(svcs.Programs))
	programs.Put("/:id", UpdateProgram(svcs.Programs))
	programs.Delete("/:id", DeleteProgram(svcs.Programs))

	departments := app.Group("/departments")
	departments.Get("/", ListDepartments(svcs.Departments))
	departments.Post("/", CreateDepartment(svcs.Departments))
	departments.Get("/:id", GetDepartment(svcs.Departments))
	departments.Put("/:id", UpdateDepartment(svcs.Departments))
	departments.Delete("/:id", DeleteDepartment(svcs.Departments))

	app.Get("/activity", ListActivity(svcs.Activity))
}
