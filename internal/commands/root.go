// Package commands implements the ledgerctl command line.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/app"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/spf13/cobra"
)

// runtime carries the state shared by every subcommand.
type runtime struct {
	organizationID string
	userID         string
	currency       string
	jsonOutput     bool

	cfg      *config.Config
	services *portssvc.ServiceContainer
	app      *app.App
	logger   *slog.Logger
}

// Option customizes the root command.
type Option func(*runtime)

// WithServices runs every command against svc instead of building storage from configuration.
func WithServices(svc *portssvc.ServiceContainer) Option {
	return func(rt *runtime) {
		rt.services = svc
	}
}

// WithConfig supplies configuration instead of loading it from the environment.
func WithConfig(cfg *config.Config) Option {
	return func(rt *runtime) {
		rt.cfg = cfg
	}
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(opts ...Option) *cobra.Command {
	rt := &runtime{logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))}
	for _, opt := range opts {
		opt(rt)
	}

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Double-entry ledger administration and financial statements",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.init(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.app != nil {
				rt.app.Close()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rt.organizationID, "org", "default", "organization ID")
	flags.StringVar(&rt.userID, "user", "ledgerctl", "user recorded in audit fields")
	flags.StringVar(&rt.currency, "currency", "", "display currency (defaults to DISPLAY_CURRENCY)")
	flags.BoolVar(&rt.jsonOutput, "json", false, "print JSON instead of tables")

	rootCmd.AddCommand(
		newAccountsCommand(rt),
		newPeriodsCommand(rt),
		newImportCommand(rt),
		newReportCommand(rt),
		newMigrateCommand(rt),
	)

	return rootCmd
}

func (rt *runtime) init(ctx context.Context) error {
	if rt.cfg == nil {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		rt.cfg = cfg
	}
	if rt.currency == "" {
		rt.currency = rt.cfg.DisplayCurrency
	}
	return nil
}

// container builds the services on first use. migrate never calls it.
func (rt *runtime) container(ctx context.Context) (*portssvc.ServiceContainer, error) {
	if rt.services != nil {
		return rt.services, nil
	}
	a, err := app.Build(ctx, rt.cfg, rt.logger, app.Options{})
	if err != nil {
		return nil, err
	}
	rt.app = a
	rt.services = a.Services
	return rt.services, nil
}
