// Package cli is the sdx command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sdx/internal/config"
	"sdx/internal/logging"
)

// Version is overridden at link time with -X sdx/internal/cli.Version=...
var Version = "dev"

// skipConfig marks commands that run without a configuration file.
const skipConfig = "sdx/skip-config"

// App carries the state shared by subcommands once the root has loaded the
// configuration.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// EnvFiles are loaded into the process environment before configuration
	// is read. Missing files are skipped.
	EnvFiles []string

	Config config.Config
	Log    zerolog.Logger
	closer io.Closer
}

func (a *App) init() {
	if a.Stdout == nil {
		a.Stdout = os.Stdout
	}
	if a.Stderr == nil {
		a.Stderr = os.Stderr
	}
	if a.Getenv == nil {
		a.Getenv = os.Getenv
	}
	if a.EnvFiles == nil {
		a.EnvFiles = []string{".env"}
	}
	a.Log = zerolog.Nop()
}

// NewRootCmd builds the command tree bound to app.
func NewRootCmd(app *App) *cobra.Command {
	app.init()
	var configPath, logLevel string

	root := &cobra.Command{
		Use:           "sdx",
		Short:         "Run stable-diffusion.cpp models from the command line or over an OpenAI-style API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (defaults SDX_CONFIG or "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error|off (defaults SDX_LOG_LEVEL or config log_level)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipConfig] == "true" {
			return nil
		}
		if err := loadEnvFiles(app.EnvFiles); err != nil {
			return err
		}
		path := configPath
		if path == "" {
			path = envStr(app.Getenv, "SDX_CONFIG", config.DefaultPath())
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := cfg.ApplyEnv(app.Getenv); err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		l, closer, err := logging.New(logging.Options{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			File:   cfg.LogFile,
			Out:    app.Stderr,
		})
		if err != nil {
			return usageError{err}
		}
		app.Config, app.Log, app.closer = cfg, l, closer
		l.Debug().Str("config", path).Int("models", len(cfg.Models)).Msg("configuration loaded")
		return nil
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.closer != nil {
			return app.closer.Close()
		}
		return nil
	}

	root.AddCommand(newGenerateCmd(app), newServeCmd(app), newModelsCmd(app), newVersionCmd(app))
	return root
}

// MainWithArgs runs the command tree and returns the process exit code.
func MainWithArgs(args []string, app *App) int {
	root := NewRootCmd(app)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(app.Stderr, "error: %v\n", err)
		return ExitCode(err)
	}
	return 0
}

// Main returns an exit code for use by cmd/sdx.
func Main() int { return MainWithArgs(os.Args[1:], &App{}) }

func loadEnvFiles(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
