package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tacslabs/tacs-console/internal/config"
	"github.com/tacslabs/tacs-console/internal/logger"
	"github.com/tacslabs/tacs-console/internal/service"
	"github.com/tacslabs/tacs-console/internal/store"
)

// app bundles the opened store and the services built on it.
type app struct {
	cfg           *config.Config
	log           *logger.Logger
	store         *store.Store
	audit         *service.AuditRecorder
	auth          *service.AuthService
	announcements *service.AnnouncementService
	ips           *service.IPService
}

// openApp loads configuration, opens the database and wires the services.
// Callers must Close.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.Database.Path = dataDir
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	st, err := store.Open(cfg.Database.Path, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	audit := service.NewAuditRecorder(st, log)
	return &app{
		cfg:           cfg,
		log:           log,
		store:         st,
		audit:         audit,
		auth:          service.NewAuthService(st, audit, cfg, log),
		announcements: service.NewAnnouncementService(st, audit, log),
		ips:           service.NewIPService(st, audit, log),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Error().Err(err).Msg("failed to close database")
	}
}

// promptPassword reads a password from the terminal without echo, optionally
// asking for confirmation.
func promptPassword(confirm bool) (string, error) {
	fmt.Print("Password: ")
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	if confirm {
		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Println()

		if string(pwBytes) != string(confirmBytes) {
			return "", fmt.Errorf("passwords do not match")
		}
	}

	return string(pwBytes), nil
}
