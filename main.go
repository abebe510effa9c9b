package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	api "email-sorter/cmd/api"
	"email-sorter/pkg/config"
	"email-sorter/pkg/database"
	"email-sorter/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "email-sorter",
	Short: "Email rules and templates service",
	Long: `email-sorter stores email sorting rules and reusable email templates
and serves them over a JSON API together with a small dashboard.

Configuration comes from a .env file, an optional YAML file and the
environment, in increasing order of precedence.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to YAML config file (default $CONFIG_FILE)")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds what every subcommand needs.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	level zap.AtomicLevel
	db    *gorm.DB
}

// bootstrap loads configuration, builds the logger and opens the database.
// Tables are created if missing.
func bootstrap() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	log, level, err := logger.NewAtomic(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize database
	db, err := database.NewConnection(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate database schemas
	if err := api.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &app{cfg: cfg, log: log, level: level, db: db}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Error("Failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	gin.SetMode(a.cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := api.NewHandler(a.db, a.log, a.level)

	a.log.Info("Server starting",
		zap.String("port", a.cfg.Server.Port),
		zap.String("db_driver", a.cfg.Database.Driver),
		zap.String("gin_mode", a.cfg.Server.Mode))
	return handler.Start(ctx, a.cfg.Addr(), a.cfg.Server.ShutdownTimeout)
}
