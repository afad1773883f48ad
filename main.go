package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrewpaige1/quizbot-api/auth"
	"github.com/andrewpaige1/quizbot-api/config"
	"github.com/andrewpaige1/quizbot-api/handlers"
	"github.com/andrewpaige1/quizbot-api/middleware"
	"github.com/andrewpaige1/quizbot-api/router"
	"github.com/andrewpaige1/quizbot-api/scheduler"
	"github.com/andrewpaige1/quizbot-api/store"
)

var (
	port   int
	dbURL  string
	dbType string
)

var rootCmd = &cobra.Command{
	Use:   "quizbot-api",
	Short: "Admin and listing API for the quiz bot",
	RunE:  serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  serve,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and the bootstrap admin, then exit",
	RunE:  migrate,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 0, "Server port (default: PORT or 8080)")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "Database connection string (default: DB_URL)")
	rootCmd.PersistentFlags().StringVar(&dbType, "db-type", "", "Database type: postgres or sqlite (default: DB_TYPE)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	config.LoadDotEnv()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadEnvironment() (config.Environment, error) {
	env, err := config.LoadEnvironment()
	if err != nil {
		return config.Environment{}, err
	}
	if port != 0 {
		env.Port = port
	}
	if dbURL != "" {
		env.DatabaseURL = dbURL
	}
	if dbType != "" {
		env.DatabaseType = dbType
	}
	return env, env.Validate()
}

func migrate(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	s := store.New(config.NewDatabase(env))
	if err := s.Connect(cmd.Context(), env); err != nil {
		return err
	}
	slog.Info("schema ready")
	return s.Disconnect()
}

func serve(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := store.New(config.NewDatabase(env))
	if err := s.Connect(ctx, env); err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	defer func() {
		if err := s.Disconnect(); err != nil {
			slog.Error("database disconnect failed", "error", err)
		}
	}()

	tokens, err := auth.NewValidator([]byte(env.SessionSecret))
	if err != nil {
		return err
	}

	cleanup, err := scheduler.StartSessionCleanup(s.Sessions, env.CleanupSchedule)
	if err != nil {
		return err
	}
	defer cleanup.Stop()

	server := &http.Server{
		Addr:              "0.0.0.0:" + strconv.Itoa(env.Port),
		Handler:           router.NewRouter(handlers.NewDBHandler(s, env), middleware.NewAuthenticator(s.Sessions, tokens), env),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "port", env.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("Server closed")
	return nil
}
