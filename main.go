package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"notenexus/config"
	"notenexus/handlers/api"
	"notenexus/handlers/web"
	"notenexus/middleware"
	"notenexus/storage"
	"notenexus/store"
	"notenexus/utils"
)

func main() {
	utils.Log.Info("Initializing NoteNexus...")

	cfg, err := config.LoadConfig("config.toml")
	if err != nil {
		utils.Log.Error("Failed to load config: %v", err)
		cfg = config.Default()
	}

	if err := utils.InitI18n(); err != nil {
		utils.Log.Error("Failed to initialize i18n: %v", err)
	}

	// Persistence port: one bolt database backs the user/viewMode slots
	// and the browser sessions.
	boltStore, err := storage.NewBoltStore(cfg.Storage.Folder)
	if err != nil {
		utils.Log.Error("Failed to open storage: %v", err)
		return
	}
	defer boltStore.Close()

	sessionStorage, err := storage.NewSessionStorage(boltStore.DB())
	if err != nil {
		utils.Log.Error("Failed to initialize session storage: %v", err)
		return
	}

	sessions := session.New(session.Config{
		Storage:        sessionStorage,
		Expiration:     time.Duration(cfg.Session.ExpirationHours) * time.Hour,
		CookieSecure:   cfg.SSL.Enabled,
		CookieHTTPOnly: true,
	})

	// The two state containers behind every page.
	users := store.NewSession(boltStore, cfg.Backend.Latency())
	notes := store.NewNotes(boltStore)

	notifications := api.NewNotificationHandler()
	notes.Subscribe(notifications.Broadcast)

	// Restore the persisted session in the background; the loading flag
	// gates protected pages until this completes.
	go func() {
		if err := users.Restore(context.Background()); err != nil {
			utils.Log.Error("Session restore failed: %v", err)
		}
		if u := users.User(); u != nil {
			notes.SetUser(u)
		}
	}()

	// Template engine with custom functions
	engine := html.New("./templates", ".html")
	engine.AddFunc("lower", strings.ToLower)
	engine.AddFunc("upper", strings.ToUpper)
	engine.AddFunc("trim", strings.TrimSpace)

	engine.AddFunc("t", func(messageID string) string {
		return utils.T(utils.Localizer, messageID)
	})
	engine.AddFunc("tWithData", func(messageID string, data map[string]interface{}) string {
		return utils.TWithData(utils.Localizer, messageID, data)
	})
	engine.AddFunc("tPlural", func(messageID string, count int) string {
		return utils.TPlural(utils.Localizer, messageID, count)
	})

	engine.AddFunc("formatDate", func(t time.Time) string {
		return t.Format("Jan 02, 2006 15:04")
	})

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			if appErr, ok := err.(*utils.AppError); ok {
				code = appErr.Code
				utils.Log.Error("Application error: %v", appErr)
			} else if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			if isAPIRequest(c) {
				return c.Status(code).JSON(fiber.Map{
					"error": err.Error(),
				})
			}

			return c.Status(code).Render("error", fiber.Map{
				"Error": err.Error(),
				"Code":  code,
			})
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:;",
	}))

	app.Use(middleware.LocaleMiddleware())
	app.Use(middleware.RateLimiter(100, time.Minute))

	// CSRF: issue a token on page loads, verify it on mutations
	app.Use(func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			if token := c.Cookies("csrf_token"); token != "" {
				c.Locals("csrf", token)
			} else {
				middleware.GenerateCSRFToken(c)
			}
		}
		return c.Next()
	})
	app.Use(middleware.CSRFProtection())

	app.Static("/assets", "./assets", fiber.Static{
		Compress:      true,
		CacheDuration: 24 * time.Hour,
	})

	renderCache := utils.NewRenderCache(10 * time.Minute)

	// Web handlers
	authHandler := web.NewAuthHandler(sessions, cfg, users, notes)
	notesPageHandler := web.NewNotesHandler(users, notes, renderCache)
	profileHandler := web.NewProfileHandler(users)
	settingsHandler := web.NewSettingsHandler(users, notes)

	// API handlers
	notesHandler := api.NewNotesHandler(notes, users, cfg.Editor.ImageMaxWidth)
	labelHandler := api.NewLabelHandler(notes)
	viewHandler := api.NewViewHandler(notes)
	searchHandler := api.NewSearchHandler(notes, cfg.Editor.SearchDebounce())
	defer searchHandler.Close()
	editorHandler := api.NewEditorHandler(notes, cfg.Editor.AutosaveDelay())
	i18nHandler := &api.I18nHandler{}

	// Public routes
	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login", authHandler.HandleLogin)
	app.Get("/register", authHandler.ShowRegister)
	app.Post("/register", authHandler.HandleRegister)
	app.Get("/forgot-password", authHandler.ShowForgotPassword)
	app.Post("/forgot-password", authHandler.HandleForgotPassword)
	app.Get("/logout", authHandler.HandleLogout)

	// Health check endpoint; registered before the session gate so
	// monitors reach it without a session.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Protected routes group
	protected := app.Group("", api.SessionMiddleware(sessions, users, cfg.Session.Secret))

	protected.Get("/", notesPageHandler.HandleHome)
	protected.Get("/profile", profileHandler.ShowProfile)
	protected.Post("/profile", profileHandler.HandleProfileUpdate)
	protected.Get("/settings", settingsHandler.ShowSettings)
	protected.Post("/settings", settingsHandler.HandleSettingsUpdate)

	// API routes
	apiRoutes := protected.Group("/api")
	{
		// Note routes
		apiRoutes.Post("/notes", notesHandler.CreateNote)
		apiRoutes.Put("/notes/:id", notesHandler.UpdateNote)
		apiRoutes.Delete("/notes/:id", notesHandler.DeleteNote)
		apiRoutes.Post("/notes/:id/pin", notesHandler.TogglePin)
		apiRoutes.Post("/notes/:id/share", notesHandler.ShareNote)
		apiRoutes.Delete("/notes/:id/share/:userId", notesHandler.RemoveSharedUser)
		apiRoutes.Post("/notes/:id/images", notesHandler.AttachImage)

		// Editor autosave routes
		apiRoutes.Post("/notes/:id/editor/dirty", editorHandler.MarkDirty)
		apiRoutes.Post("/notes/:id/editor/save", editorHandler.Save)
		apiRoutes.Post("/notes/:id/editor/close", editorHandler.Close)

		// Label routes
		apiRoutes.Get("/labels", labelHandler.GetLabels)
		apiRoutes.Post("/labels", labelHandler.CreateLabel)
		apiRoutes.Put("/labels/:id", labelHandler.UpdateLabel)
		apiRoutes.Delete("/labels/:id", labelHandler.DeleteLabel)

		// View and filter routes
		apiRoutes.Post("/view/toggle", viewHandler.ToggleViewMode)
		apiRoutes.Post("/filters/labels/:id", viewHandler.ToggleLabelFilter)
		apiRoutes.Delete("/filters/labels", viewHandler.ClearLabelFilters)

		// Search routes
		apiRoutes.Post("/search/input", searchHandler.HandleInput)
		apiRoutes.Post("/search", searchHandler.HandleSearch)

		// Live change feed
		apiRoutes.Get("/events", notifications.HandleSSE)

		// i18n routes
		apiRoutes.Get("/i18n/:lang", i18nHandler.GetTranslations)
	}

	// HTMX routes (partial template renders)
	htmx := protected.Group("/htmx")
	{
		htmx.Get("/notes/:id", notesPageHandler.HandleNotePartial)
	}

	// Websocket change feed
	protected.Get("/ws", notifications.UpgradeWS, notifications.HandleWS())

	// 404 Handler for undefined routes
	app.Use(func(c *fiber.Ctx) error {
		localizer, _ := c.Locals("localizer").(*i18n.Localizer)
		if localizer == nil {
			localizer = utils.Localizer
		}

		if isAPIRequest(c) {
			return c.Status(404).JSON(fiber.Map{
				"error": utils.T(localizer, "error_404"),
			})
		}
		return c.Status(404).Render("error", fiber.Map{
			"Error": utils.T(localizer, "error_404"),
			"Code":  404,
		})
	})

	if cfg.SSL.Enabled {
		utils.Log.Info("Starting HTTPS server on port %d", cfg.SSL.Port)
		if err := app.ListenTLS(fmt.Sprintf(":%d", cfg.SSL.Port), cfg.SSL.CertFile, cfg.SSL.KeyFile); err != nil {
			utils.Log.Error("Server error: %v", err)
		}
		return
	}

	utils.Log.Info("Starting server on port %d", cfg.Server.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		utils.Log.Error("Server error: %v", err)
	}
}

// isAPIRequest determines if the request expects JSON
func isAPIRequest(c *fiber.Ctx) bool {
	if c == nil {
		return false
	}
	if c.Get("HX-Request") != "" {
		return true
	}
	path := c.Path()
	return len(path) >= 4 && path[:4] == "/api"
}
