package server

import (
	"log"
	"strings"

	"vardiya-backend/internal/admin"
	"vardiya-backend/internal/auth"
	"vardiya-backend/internal/config"
	"vardiya-backend/internal/schedule"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// New: fiber uygulamasını route tablosuyla birlikte kurar. main ve testler
// aynı uygulamayı buradan alır.
func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Use(requestid.New())
	app.Use(logger.New())

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/me", auth.MeHandler())

	// Çizelgeler
	protected.Get("/schedules", schedule.ListSchedulesHandler())
	protected.Post("/schedules", schedule.CreateScheduleHandler())
	protected.Delete("/schedules/:id", schedule.DeleteScheduleHandler())

	// Üyeler
	protected.Get("/schedules/:id/members", schedule.ListMembersHandler())
	protected.Post("/schedules/:id/members", schedule.AddMemberHandler())
	protected.Post("/schedules/:id/members/:user_id/role", schedule.SetMemberRoleHandler())

	// Vardiyalar
	protected.Get("/schedules/:id/shifts", schedule.ListShiftsHandler())
	protected.Post("/schedules/:id/shifts", schedule.CreateShiftHandler())
	protected.Post("/shifts/:id/assign", schedule.AssignShiftHandler())

	// Yorumlar
	protected.Get("/shifts/:id/comments", schedule.ListCommentsHandler())
	protected.Post("/shifts/:id/comments", schedule.AddCommentHandler())

	// Rotasyon şablonları
	protected.Get("/schedules/:id/templates", schedule.ListTemplatesHandler())
	protected.Post("/schedules/:id/templates", schedule.CreateTemplateHandler())
	protected.Post("/schedules/:id/templates/:template_id/apply", schedule.ApplyTemplateHandler())

	// Superadmin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireSuperadmin())

	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Delete("/users/:id", admin.DeleteUserHandler())

	return app
}
