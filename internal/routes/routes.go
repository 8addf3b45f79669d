package routes

import (
	"time"

	"github.com/Valentin6743/LS/internal/config"
	"github.com/Valentin6743/LS/internal/handlers"
	"github.com/Valentin6743/LS/internal/middleware"
	"github.com/Valentin6743/LS/internal/organizer"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups the route handlers. Auth and Records are nil when no
// database is configured.
type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Organizer *handlers.OrganizerHandler
	Records   *handlers.RecordsHandler
}

func perIP(n int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               n,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

func Setup(app *fiber.App, cfg *config.Config, resolver *organizer.Resolver, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(perIP(60))

	api.Get("/health", h.Health.Check)

	if h.Auth != nil {
		// Auth-specific rate limit: 10 req/min per IP (stricter)
		auth := api.Group("/auth")
		auth.Use(perIP(10))
		auth.Post("/register", h.Auth.Register)
		auth.Post("/login", h.Auth.Login)
		auth.Post("/refresh", h.Auth.Refresh)

		// Protected auth routes carry the JWT middleware per route so the
		// public ones above stay open.
		api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
		api.Delete("/auth/account", middleware.JWTProtected(cfg), h.Auth.DeleteAccount)
		api.Get("/me", middleware.JWTProtected(cfg), h.Auth.Me)
		api.Put("/me", middleware.JWTProtected(cfg), h.Auth.UpdateMe)
	}

	who := middleware.JWTProtected(cfg)
	if !resolver.Remote() {
		who = middleware.ActAs(resolver.Local().CurrentUser)
		api.Get("/session", h.Organizer.SessionUser)
		api.Put("/session", h.Organizer.UpdateSessionUser)
	}

	org := api.Group("/organizer", who)
	org.Get("/dashboard", h.Organizer.Dashboard)

	org.Get("/tasks", h.Organizer.ListTasks)
	org.Post("/tasks", h.Organizer.AddTask)
	org.Put("/tasks/:id", h.Organizer.UpdateTask)
	org.Delete("/tasks/:id", h.Organizer.DeleteTask)
	org.Post("/tasks/:id/toggle", h.Organizer.ToggleTask)

	org.Get("/events", h.Organizer.ListEvents)
	org.Post("/events", h.Organizer.AddEvent)
	org.Put("/events/:id", h.Organizer.UpdateEvent)
	org.Delete("/events/:id", h.Organizer.DeleteEvent)

	org.Get("/memories", h.Organizer.ListMemories)
	org.Post("/memories", h.Organizer.AddMemory)
	org.Put("/memories/:id", h.Organizer.UpdateMemory)
	org.Delete("/memories/:id", h.Organizer.DeleteMemory)

	org.Get("/files", h.Organizer.ListFiles)
	org.Post("/files", h.Organizer.AddFile)
	org.Delete("/files/:id", h.Organizer.DeleteFile)

	org.Get("/friends", h.Organizer.ListFriends)
	org.Post("/friends", h.Organizer.AddFriend)
	org.Get("/friend-requests", h.Organizer.ListFriendRequests)
	org.Post("/friend-requests/:id", h.Organizer.HandleFriendRequest)

	org.Get("/groups", h.Organizer.ListGroups)
	org.Get("/conversations", h.Organizer.ListConversations)
	org.Get("/conversations/:id/messages", h.Organizer.ListMessages)
	org.Post("/conversations/:id/messages", h.Organizer.SendMessage)

	if h.Records == nil {
		return
	}
	rec := api.Group("/records", middleware.JWTProtected(cfg))

	rec.Get("/projects", h.Records.ListProjects)
	rec.Post("/projects", h.Records.CreateProject)
	rec.Put("/projects/:id", h.Records.UpdateProject)
	rec.Delete("/projects/:id", h.Records.DeleteProject)

	rec.Get("/habits", h.Records.ListHabits)
	rec.Post("/habits", h.Records.CreateHabit)
	rec.Put("/habits/:id", h.Records.UpdateHabit)
	rec.Delete("/habits/:id", h.Records.DeleteHabit)
	rec.Post("/habits/:id/logs", h.Records.LogHabit)
	rec.Get("/habits/:id/logs", h.Records.HabitLogs)

	rec.Get("/transactions", h.Records.ListTransactions)
	rec.Get("/transactions/summary", h.Records.TransactionSummary)
	rec.Post("/transactions", h.Records.CreateTransaction)
	rec.Put("/transactions/:id", h.Records.UpdateTransaction)
	rec.Delete("/transactions/:id", h.Records.DeleteTransaction)

	rec.Get("/notes", h.Records.ListNotes)
	rec.Post("/notes", h.Records.CreateNote)
	rec.Put("/notes/:id", h.Records.UpdateNote)
	rec.Delete("/notes/:id", h.Records.DeleteNote)

	rec.Get("/notifications", h.Records.ListNotifications)
	rec.Post("/notifications/read", h.Records.MarkAllNotificationsRead)
	rec.Post("/notifications/:id/read", h.Records.MarkNotificationRead)
}
