package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"homestead/server/config"
	"homestead/server/internal/api"
	"homestead/server/internal/auth"
	"homestead/server/internal/models"
	"homestead/server/internal/notify"
	"homestead/server/internal/store"
	"homestead/server/internal/workflow"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "homestead",
		Short: "Real-estate marketplace server",
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd(), seedAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	return logger
}

func openStore(cfg *config.Config, logger *logrus.Logger) (*store.Store, error) {
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	logger.Infof("Using database at: %s", cfg.Database.Path)
	return store.Open(cfg.Database.Path)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := openStore(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			logger.Info("Running database migrations...")
			if err := db.Migrate(); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			// Notification fan-out: always log, Telegram when configured.
			queue := notify.NewEventQueue(cfg.Notifications.QueueSize, logger)
			queue.Subscribe(notify.NewLogNotifier(logger))
			if cfg.Telegram.Enabled {
				tg, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
				if err != nil {
					logger.WithError(err).Error("Failed to initialize Telegram notifier")
				} else {
					queue.Subscribe(tg)
				}
			}
			queue.Start()
			defer queue.Close()

			tokens := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
			wf := workflow.NewService(db, logger, queue)
			handler := api.NewHandler(db, wf, tokens, logger)

			router := gin.New()
			router.Use(gin.Recovery())
			router.Use(cors.New(cors.Config{
				AllowOrigins:  cfg.Server.AllowedOrigins,
				AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
				ExposeHeaders: []string{"Content-Length"},
			}))
			api.SetupRoutes(router, handler, tokens)

			logger.Infof("Starting server on port %s", cfg.Server.Port)
			return router.Run(":" + cfg.Server.Port)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := openStore(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			if err := db.Migrate(); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}
			logger.Info("Migrations applied")
			return nil
		},
	}
}

func seedAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the bootstrap admin account from the environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cfg.Admin.Password == "" {
				return fmt.Errorf("ADMIN_PASSWORD must be set")
			}

			db, err := openStore(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			if err := db.Migrate(); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			if _, err := db.AdminByLoginID(cfg.Admin.AdminID); err == nil {
				logger.Infof("Admin account %q already exists", cfg.Admin.AdminID)
				return nil
			}

			hash, err := auth.HashPassword(cfg.Admin.Password)
			if err != nil {
				return fmt.Errorf("failed to hash admin password: %w", err)
			}
			admin := &models.Party{
				Role:         models.RoleAdmin,
				AdminID:      cfg.Admin.AdminID,
				Email:        cfg.Admin.AdminID + "@homestead.local",
				PasswordHash: hash,
				FirstName:    cfg.Admin.Name,
				Status:       models.PartyApproved,
			}
			if err := db.CreateParty(admin); err != nil {
				return fmt.Errorf("failed to create admin account: %w", err)
			}
			logger.Infof("Admin account %q created", cfg.Admin.AdminID)
			return nil
		},
	}
}
