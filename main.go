package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"cloudstore/internal/audit"
	"cloudstore/internal/auth"
	"cloudstore/internal/config"
	"cloudstore/internal/http"
	"cloudstore/internal/identity"
	"cloudstore/internal/repository/postgres"
	"cloudstore/internal/service"
	"cloudstore/internal/storage/s3"
)

const (
	envFilePath      = ".env"
	serverAddrPrefix = ":"
	signalBufferSize = 1
	logOutputFlags   = log.LstdFlags | log.Lshortfile
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

func main() {
	if err := godotenv.Load(envFilePath); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(logOutputFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Configuration loaded successfully")

	ctx := context.Background()

	if err := postgres.RunMigrations(ctx, &cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Database connection established")

	userRepo := postgres.NewUserRepository(db)
	folderRepo := postgres.NewFolderRepository(db)
	fileRepo := postgres.NewFileRepository(db)
	shareRepo := postgres.NewShareRepository(db)

	s3Client, err := s3.NewClient(&cfg.AWS, cfg.App.PresignedURLTTL)
	if err != nil {
		log.Fatalf("Failed to create S3 client: %v", err)
	}

	log.Println("S3 client initialized")

	provider, err := identity.NewCognito(&cfg.AWS, &cfg.Cognito)
	if err != nil {
		log.Fatalf("Failed to create identity provider: %v", err)
	}

	verifier, err := auth.NewJWKSVerifier(ctx, cfg.Cognito.JWKSURL)
	if err != nil {
		log.Fatalf("Failed to fetch signing keys: %v", err)
	}

	userService := service.NewUserService(userRepo, provider)
	folderService := service.NewFolderService(folderRepo, userRepo)
	fileService := service.NewFileService(fileRepo, userRepo, folderRepo)
	shareService := service.NewShareService(shareRepo, fileRepo, userRepo)

	authMiddleware := auth.NewMiddleware(verifier, userRepo)
	auditLogger := audit.NewLogger(db.Pool)

	serverDeps := &http.ServerDependencies{
		Config:         cfg,
		UserService:    userService,
		FileService:    fileService,
		FolderService:  folderService,
		ShareService:   shareService,
		Storage:        s3Client,
		AuthMiddleware: authMiddleware,
		AuditLogger:    auditLogger,
	}

	server := http.NewServer(serverDeps)

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := server.Start(serverAddrPrefix + cfg.Server.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, signalBufferSize)
	signal.Notify(quit, shutdownSignals...)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
