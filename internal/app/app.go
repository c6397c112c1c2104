package app

import (
	"lavajato-backend/internal/audit"
	"lavajato-backend/internal/auth"
	"lavajato-backend/internal/catalog"
	"lavajato-backend/internal/clients"
	"lavajato-backend/internal/config"
	"lavajato-backend/internal/constants"
	"lavajato-backend/internal/dashboard"
	"lavajato-backend/internal/database"
	"lavajato-backend/internal/emails"
	"lavajato-backend/internal/health"
	"lavajato-backend/internal/invoice"
	"lavajato-backend/internal/middleware"
	"lavajato-backend/internal/orders"
	"lavajato-backend/internal/pkg/response"
	"lavajato-backend/internal/team"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. DB and Redis handles are constructed here and returned so
// the caller owns their lifecycle (ping at startup, close on shutdown).
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	app.Use(cors.New())
	app.Use(middleware.RequestMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	healthHandlers := &health.Handlers{Rdb: rdb}
	app.Get("/health", healthHandlers.Health)

	if db == nil {
		return app, db, rdb, nil
	}

	// Setup: schema migration + demo seed. Should be access-restricted in
	// production deployments.
	app.Get("/setup", func(c *fiber.Ctx) error {
		if err := database.AutoMigrate(db); err != nil {
			return response.Error(c, err.Error(), fiber.StatusInternalServerError)
		}
		if err := database.Seed(db); err != nil {
			return response.Error(c, err.Error(), fiber.StatusInternalServerError)
		}
		return response.JSON(c, fiber.Map{"message": "Database setup completed successfully"})
	})

	recorder := &audit.Recorder{DB: db}
	tokens := &auth.Tokens{AccessSecret: cfg.JWTSecret, RefreshSecret: cfg.JWTRefreshSecret}
	authService := &auth.Service{DB: db, Tokens: tokens}
	authHandlers := &auth.Handlers{Service: authService}

	app.Post("/auth/login", authHandlers.Login)
	app.Post("/auth/refresh", authHandlers.Refresh)

	var mail emails.Sender
	if cfg.SendinblueAPIKey != "" {
		mail = &emails.BrevoClient{
			APIKey:     cfg.SendinblueAPIKey,
			MailFrom:   cfg.MailFrom,
			SenderName: "Espaço Braite",
		}
	}
	teamService := &team.Service{DB: db, Mail: mail, InviteBaseURL: cfg.InviteBaseURL, Audit: recorder}
	teamHandlers := &team.Handlers{Service: teamService}

	// Public invite endpoints: token check and acceptance signup.
	app.Get("/team/invite/:token", teamHandlers.CheckToken)
	app.Post("/team/accept", teamHandlers.Accept)

	requireAuth := middleware.RequireAuth(authService)
	requireTenant := middleware.RequireTenant()

	app.Get("/me", requireAuth, requireTenant, authHandlers.Me)

	dashboardHandlers := &dashboard.Handlers{
		Service: &dashboard.Service{DB: db, Location: cfg.Location()},
	}
	app.Get("/dashboard", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionRead), dashboardHandlers.Get)

	clientHandlers := &clients.Handlers{Service: &clients.Service{DB: db, Audit: recorder}}
	app.Get("/clients", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionRead), clientHandlers.List)
	app.Post("/clients", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionCreate), clientHandlers.Create)
	app.Put("/clients/:id", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionUpdate), clientHandlers.Update)
	app.Delete("/clients/:id", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionDelete), clientHandlers.Delete)

	catalogHandlers := &catalog.Handlers{Service: &catalog.Service{DB: db, Audit: recorder}}
	app.Get("/services", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionRead), catalogHandlers.List)
	app.Post("/services", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionCreate), catalogHandlers.Create)
	app.Delete("/services/:id", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionDelete), catalogHandlers.Delete)

	orderHandlers := &orders.Handlers{
		Service:  &orders.Service{DB: db, Audit: recorder},
		Renderer: &invoice.Renderer{DB: db},
	}
	app.Get("/orders", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionRead), orderHandlers.List)
	app.Post("/orders", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionCreate), orderHandlers.Create)
	app.Get("/orders/:id", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionRead), orderHandlers.Get)
	app.Put("/orders/:id", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionUpdate), orderHandlers.Update)
	app.Get("/orders/:id/pdf", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionRead), orderHandlers.PDF)

	app.Get("/team", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionRead), teamHandlers.List)
	app.Post("/team/invite", requireAuth, requireTenant,
		middleware.RequirePermission(constants.ActionManageTeam), teamHandlers.Invite)

	return app, db, rdb, nil
}
