package app

import (
	"context"
	"fmt"
	"os"

	"github.com/andy/invoicer/internal/config"
	"github.com/andy/invoicer/internal/crypto"
	"github.com/andy/invoicer/internal/db"
	"github.com/andy/invoicer/internal/logger"
	"github.com/andy/invoicer/internal/render"
	"github.com/andy/invoicer/internal/repository"
	"github.com/andy/invoicer/internal/service"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Logger *zap.Logger

	// Repositories
	SettingsRepo repository.SettingsRepository
	ClientRepo   repository.ClientRepository
	HistoryRepo  repository.HistoryRepository

	// Services
	InvoiceService service.InvoiceService
	Viewer         service.Viewer

	closeLog func() error
}

// New loads the default config and builds the App
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg, crypto.NewKeyring())
}

// NewWithConfig creates an App with a provided config and keyring.
// On first run the user is prompted for the database password.
func NewWithConfig(ctx context.Context, cfg *config.Config, keyring crypto.Keyring) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	log, closeLog, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	password, err := keyring.GetKey()
	if err != nil {
		log.Info("no database key found, prompting", zap.Error(err))
		fmt.Println("Setting up database encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			closeLog()
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		if err := keyring.SetKey(password); err != nil {
			closeLog()
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		closeLog()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a := Assemble(cfg, database, log)
	a.closeLog = closeLog
	return a, nil
}

// Assemble wires repositories and services around an open database
func Assemble(cfg *config.Config, database *db.DB, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}

	settingsRepo := repository.NewSettingsRepo(database)
	clientRepo := repository.NewClientRepo(database)
	historyRepo := repository.NewHistoryRepo(database)

	renderer := render.New(render.Options{Compress: true, Logger: log.Named("render")})
	invoiceService := service.NewInvoiceService(renderer, settingsRepo, historyRepo, service.Options{
		OutputDir:  cfg.Invoice.OutputDir,
		DateFormat: cfg.Invoice.DateFormat,
		Logger:     log.Named("invoice"),
	})

	return &App{
		Config:         cfg,
		DB:             database,
		Logger:         log,
		SettingsRepo:   settingsRepo,
		ClientRepo:     clientRepo,
		HistoryRepo:    historyRepo,
		InvoiceService: invoiceService,
		Viewer:         service.NewViewer(log.Named("viewer")),
	}
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var err error
	if a.DB != nil {
		err = a.DB.Close()
	}
	if a.closeLog != nil {
		_ = a.closeLog()
		a.closeLog = nil
	} else if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return err
}

// promptForPassword asks for a new database password on first run
func promptForPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal available: set %s", crypto.EnvVar)
	}

	fmt.Println()
	fmt.Println("Your settings and client list will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
