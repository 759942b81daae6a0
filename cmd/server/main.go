package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emotispell/internal/config"
	"emotispell/internal/database"
	"emotispell/internal/handlers"
	"emotispell/internal/hub"
	"emotispell/internal/models"
	"emotispell/internal/puzzle"
	"emotispell/internal/repository"
	"emotispell/internal/security"
	"emotispell/internal/service"
	"emotispell/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.TokenSecret == "" {
		log.Fatal("TOKEN_SECRET must be set")
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	emotionRepo := repository.NewEmotionRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	issuer := token.NewIssuer(cfg.TokenSecret, cfg.TokenLifetime)
	eventHub := hub.New()

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.FromEmail, cfg.FromName)
	if err != nil {
		log.Printf("Warning: email delivery disabled: %v", err)
	}

	authService := service.NewAuthService(accountRepo, issuer)
	ingestService := service.NewIngestService(accountRepo, emotionRepo, reportRepo, eventHub)
	rosterService := service.NewRosterService(accountRepo, eventHub, emailService)

	// Seed the operator account
	if err := bootstrapOperator(accountRepo, cfg); err != nil {
		log.Fatalf("Failed to bootstrap operator account: %v", err)
	}

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService)
	rosterHandler := handlers.NewRosterHandler(rosterService)
	ingestHandler := handlers.NewIngestHandler(ingestService, rosterService)
	gameHandler := handlers.NewGameHandler(puzzle.NewRegistry(), ingestService, puzzle.Options{
		AdvanceDelay:  cfg.AdvanceDelay,
		EmotionWindow: cfg.EmotionWindow,
	})
	streamHandler := handlers.NewStreamHandler(eventHub)

	mux := handlers.Routes(middleware, authHandler, rosterHandler, ingestHandler, gameHandler, streamHandler)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// bootstrapOperator creates the configured operator account if no
// account with that username exists yet. Skipped when no password is
// configured.
func bootstrapOperator(accounts *repository.AccountRepository, cfg *config.Config) error {
	if cfg.OperatorPassword == "" {
		log.Println("No OPERATOR_PASSWORD set, skipping operator bootstrap")
		return nil
	}

	existing, err := accounts.GetAccountByUsername(cfg.OperatorUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := security.HashPassword(cfg.OperatorPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	operator := &models.Account{
		ID:           security.NewAccountID(),
		Role:         models.RoleOperator,
		Name:         "Operator",
		Username:     cfg.OperatorUsername,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := accounts.CreateAccount(operator); err != nil {
		return err
	}

	log.Printf("Operator account %q created", cfg.OperatorUsername)
	return nil
}
