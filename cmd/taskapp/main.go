package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	authuc "github.com/BaAEz/taskapp-Immersiveai/internal/application/auth"
	"github.com/BaAEz/taskapp-Immersiveai/internal/application/tasks"
	"github.com/BaAEz/taskapp-Immersiveai/internal/config"
	infraauth "github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/auth"
	httprouter "github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/http"
	"github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/http/handlers"
	"github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/http/middleware"
	"github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/persistence/postgres"
	"github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.RunMigrations(ctx, cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)
	issuer := infraauth.NewTokenIssuer([]byte(cfg.Token.Secret), cfg.Token.Expiry)

	signupUC := authuc.NewSignup(userRepo, hasher, issuer)
	loginUC := authuc.NewLogin(userRepo, hasher, issuer)
	createTaskUC := tasks.NewCreateTask(taskRepo)
	listTasksUC := tasks.NewListTasks(taskRepo)
	updateTaskUC := tasks.NewUpdateTask(taskRepo)
	deleteTaskUC := tasks.NewDeleteTask(taskRepo)

	authHandler := handlers.NewAuthHandler(signupUC, loginUC, log)
	tasksHandler := handlers.NewTasksHandler(createTaskUC, listTasksUC, updateTaskUC, deleteTaskUC, log)
	healthHandler := handlers.NewHealthHandler(pool)

	requireAuth := middleware.NewAuthValidator(issuer, userRepo, log).Handler
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Server.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		TasksHandler:  tasksHandler,
		HealthHandler: healthHandler,
		RequireAuth:   requireAuth,
		Secure:        secureMiddleware,
		CORS:          corsMiddleware,
		Log:           log,
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
