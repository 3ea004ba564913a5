package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rebeliceyang/lazylite/internal/app"
	"github.com/rebeliceyang/lazylite/internal/config"
	"github.com/rebeliceyang/lazylite/internal/db/connection"
	"github.com/rebeliceyang/lazylite/internal/history"
	"github.com/rebeliceyang/lazylite/internal/keymap"
	"github.com/rebeliceyang/lazylite/internal/logging"
	"github.com/rebeliceyang/lazylite/internal/ui/theme"
)

var (
	configPath string
	logFile    string
	noHistory  bool
)

var rootCmd = &cobra.Command{
	Use:   "lazylite <database>",
	Short: "Browse database tables in the terminal",
	Long: `lazylite opens every table of a database in its own tab.

<database> is a SQLite file path or a postgres:// connection URL. A missing
PostgreSQL password is looked up in the system keyring under the service
"lazylite".`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/lazylite/config.yaml)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file (overrides log.file)")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record submitted commands")

	rootCmd.AddCommand(configCmd)
}

func run(ctx context.Context, target string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	loader := config.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	logger.Info("starting", slog.String("target", redact(target)), slog.String("config", loader.ConfigFile()))

	source, err := connection.Open(ctx, target)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	options := []app.Option{
		app.WithLogger(logger),
		app.WithKeymap(keymap.Build(cfg.Keybinds)),
	}
	if cfg.History.Enabled && !noHistory {
		store, err := openHistory(cfg)
		if err != nil {
			// History is optional; keep going without it
			logger.Warn("history disabled", slog.Any("error", err))
		} else {
			defer func() { _ = store.Close() }()
			options = append(options, app.WithHistory(store))
		}
	}

	session, err := app.New(ctx, source, app.OptionsFromConfig(cfg, redact(target)), options...)
	if err != nil {
		return err
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.MouseEnabled {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(app.NewApp(ctx, session, theme.GetTheme(cfg.UI.Theme)), programOpts...)

	loader.Watch(func(c *config.Config, err error) {
		if err != nil {
			p.Send(app.KeymapReloadedMsg{Err: err})
			return
		}
		p.Send(app.KeymapReloadedMsg{Keymap: keymap.Build(c.Keybinds)})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("exiting")
	return nil
}

func openLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	path, err := cfg.LogFile()
	if err != nil {
		return nil, nil, err
	}

	logger, closer, err := logging.New(path, level)
	if err != nil {
		return nil, nil, err
	}
	return logger, closer.Close, nil
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	path, err := cfg.HistoryFile()
	if err != nil {
		return nil, err
	}
	return history.NewStore(path, cfg.History.MaxEntries)
}

// redact hides the password of a connection URL
func redact(target string) string {
	if !connection.IsPostgres(target) {
		return target
	}
	u, err := url.Parse(target)
	if err != nil {
		return "postgres"
	}
	return u.Redacted()
}
