package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/leondli/gallery/internal/adapter/handler"
	"github.com/leondli/gallery/internal/adapter/repository"
	"github.com/leondli/gallery/internal/infrastructure/config"
	"github.com/leondli/gallery/internal/infrastructure/database"
	"github.com/leondli/gallery/internal/infrastructure/events"
	"github.com/leondli/gallery/internal/infrastructure/logger"
	"github.com/leondli/gallery/internal/infrastructure/server"
	"github.com/leondli/gallery/internal/infrastructure/session"
	"github.com/leondli/gallery/internal/usecase/access"
	"github.com/leondli/gallery/internal/usecase/auth"
	"github.com/leondli/gallery/internal/usecase/file"
	"github.com/leondli/gallery/internal/usecase/folder"
	"github.com/leondli/gallery/internal/usecase/tag"
	"github.com/leondli/gallery/internal/usecase/user"
	"github.com/leondli/gallery/pkg/jwt"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(&cfg.Log)
	log.Info().Msg("Starting Gallery Backend...")

	// Initialize database
	db, err := database.Init(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
	err = repository.Migrate(migrateCtx, db)
	cancelMigrate()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Initialize JWT manager
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.GetAccessTokenExpiry(),
		cfg.JWT.GetRefreshTokenExpiry(),
		cfg.JWT.Issuer,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	fileRepo := repository.NewFileRepository(db)
	tagRepo := repository.NewTagRepository(db)

	sessions := session.NewProvider()
	hub := events.NewHub(0)

	// Initialize use cases
	accessUseCase := access.NewUseCase(folderRepo, sessions)
	authUseCase := auth.NewUseCase(userRepo, refreshTokenRepo, jwtManager)
	userUseCase := user.NewUseCase(userRepo)
	folderUseCase := folder.NewUseCase(folderRepo, sessions)
	fileUseCase := file.NewUseCase(fileRepo, folderRepo, accessUseCase)
	tagUseCase := tag.NewUseCase(tagRepo, fileRepo, accessUseCase, sessions, hub)

	// Initialize handlers
	handlers := &handler.Handlers{
		Auth:   handler.NewAuthHandler(authUseCase),
		User:   handler.NewUserHandler(userUseCase),
		Folder: handler.NewFolderHandler(folderUseCase),
		File:   handler.NewFileHandler(fileUseCase),
		Tag:    handler.NewTagHandler(tagUseCase),
		Event:  handler.NewEventHandler(hub, accessUseCase),
	}

	// Initialize HTTP server
	srv := server.New(&cfg.Server)
	handler.RegisterRoutes(srv.Router(), handlers, jwtManager)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		return
	}

	log.Info().Msg("Server exited")
}
