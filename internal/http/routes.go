package http

import (
	"todo_webapp/internal/config"
	"todo_webapp/internal/http/handlers"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"
	"todo_webapp/internal/supabase"
	"todo_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config, db *pgxpool.Pool, version string) {
	authClient := supabase.NewAuthClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	storageClient := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)

	todoRepo := repository.NewTodoRepository(db)
	todoService := service.NewTodoService(todoRepo, storageClient, cfg.StorageBucket, cfg.UploadPrefix)

	hub := ws.NewHub()
	go hub.Run()

	h := handlers.NewHandler(todoService, authClient, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	authRL := middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	v1.Use(middleware.AuthContext())

	// Auth
	v1.POST("/login", authRL, h.Login)
	v1.POST("/logout", h.Logout)
	v1.POST("/register", authRL, h.Register)
	v1.GET("/user", h.Me)

	// Todos
	todos := v1.Group("/todos")
	todos.Use(middleware.RequireAuth())
	{
		todos.GET("", h.ListTodos)
		todos.POST("", h.CreateTodo)
		todos.GET("/:id", h.GetTodo)
		todos.PUT("/:id", h.UpdateTodo)
		todos.DELETE("/:id", h.DeleteTodo)
		todos.PATCH("/toggle/:id", h.ToggleTodo)
	}

	// Live todo event feed for open dashboards
	r.GET("/ws", middleware.AuthContext(), h.WS(hub))

	// Dashboard pages: static frontend behind the access guard
	r.StaticFS("/assets", gin.Dir("./web/assets", false))
	r.NoRoute(
		middleware.AuthContext(),
		middleware.AccessGuard(cfg.RequireAuthPrefixes),
		func(c *gin.Context) {
			c.File("./web/index.html")
		},
	)
}
