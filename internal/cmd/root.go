package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"searchui/internal/api"
	"searchui/internal/config"
	"searchui/internal/logging"
	"searchui/internal/tui"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	baseURL    string
	logLevel   string
}

// NewRootCmd builds the searchui command tree.
func NewRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "searchui",
		Short: "Terminal client for the search engine backend",
		Long: `searchui - search and feed a remote search engine from the terminal

Running without a subcommand opens the interactive search screen:
  enter    run the query
  ↑/↓      move between results
  ctrl+u   upload a .csv or .json document
  ctrl+c   quit`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(&flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to YAML config (default ./searchui.yaml, then ~/.config/searchui/config.yaml)")
	pf.StringVar(&flags.baseURL, "base-url", "", "search backend URL (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newQueryCmd(&flags))
	root.AddCommand(newUploadCmd(&flags))
	root.AddCommand(newConfigCmd(&flags))
	return root
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// env is what a command needs once configuration is resolved.
type env struct {
	cfg    *config.AppConfig
	logger *logging.Logger
	client *api.Client
}

func (e *env) Close() {
	_ = e.logger.Close()
}

func loadConfig(flags *globalFlags) (*config.AppConfig, string, error) {
	_ = godotenv.Load()

	var (
		cfg  *config.AppConfig
		path string
		err  error
	)
	if flags.configPath == "" {
		cfg, path, err = config.LoadDefault()
	} else {
		path = flags.configPath
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	if flags.baseURL != "" {
		cfg.Backend.BaseURL = flags.baseURL
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	return cfg, path, nil
}

func setup(flags *globalFlags) (*env, error) {
	cfg, _, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	logger, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	client := api.NewClient(api.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout(),
		Logger:  logger.Logger,
	})
	logger.Debug("backend configured", "base_url", client.BaseURL(), "timeout", cfg.Backend.Timeout())
	return &env{cfg: cfg, logger: logger, client: client}, nil
}

func runTUI(flags *globalFlags) error {
	e, err := setup(flags)
	if err != nil {
		return err
	}
	defer e.Close()

	m := tui.New(e.client, tui.Options{
		Logger:      e.logger.Logger,
		ResultLimit: e.cfg.UI.ResultLimit,
		BaseURL:     e.client.BaseURL(),
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		e.logger.Error("tui exited", "err", err)
		return err
	}
	return nil
}
