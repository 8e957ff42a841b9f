// Package cmd wires the terminal together: config, session store, API
// client, document generator, and one command per counter role.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hospos-dev/hospos/config"
	"github.com/hospos-dev/hospos/internal/api"
	"github.com/hospos-dev/hospos/internal/document"
	"github.com/hospos-dev/hospos/internal/models"
	"github.com/hospos-dev/hospos/internal/session"
)

var (
	cfg    *config.Config
	logger zerolog.Logger
	store  *session.Store
	client *api.Client
	docs   *document.Generator
)

var rootCmd = &cobra.Command{
	Use:   "hospos",
	Short: "Hospital point-of-sale terminal",
	Long: "hospos is the counter terminal for hospital front-desk operations:\n" +
		"patient registration and slips (reception), prescriptions (doctor),\n" +
		"dispensing (pharmacy), and billing with PDF receipts.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.LoadConfig()

		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = zerolog.InfoLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		store = session.NewStore(cfg.SessionFile)
		client = api.NewClient(cfg.APIBaseURL, store, logger)
		docs = document.NewGenerator(cfg.DocumentDir, document.Letterhead{
			Name:    cfg.HospitalName,
			Address: cfg.HospitalAddress,
			Phone:   cfg.HospitalPhone,
		})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// requireLogin gates a command on having any signed-in session.
func requireLogin() (*models.User, error) {
	user, err := store.Current()
	if err != nil {
		return nil, fmt.Errorf("not logged in; run `hospos login` first")
	}
	return user, nil
}

// requireRole gates a counter command on the logged-in session's role.
func requireRole(role models.Role) (*models.User, error) {
	user, err := requireLogin()
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, fmt.Errorf("logged in as %s (%s); this counter needs the %s role",
			user.Name, user.Role, role)
	}
	return user, nil
}
