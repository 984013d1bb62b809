package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.createRootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	return root.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "searchdown",
		Short:   "Inspect, render and drive searchdown widgets",
		Version: a.version,
		Long: `searchdown works with widget configuration documents (YAML or JSON, on disk
or over HTTP). It reports how options resolve, previews the dropdown for a
query, renders the widget markup and runs an interactive terminal prompt.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	defaults := DefaultConfig()
	flags := root.PersistentFlags()
	flags.String("env-file", "", "additional .env file to load")
	flags.String("log-level", defaults.LogLevel, "log level: trace, debug, info, warn, error, disabled")
	flags.String("log-format", defaults.LogFormat, "log format: json, console, auto")
	flags.String("log-output", defaults.LogOutput, "log output: stderr, stdout, discard or a file path")
	flags.Bool("allow-http", defaults.AllowHTTP, "allow configuration documents from http(s) URLs")
	flags.Duration("timeout", defaults.Timeout, "timeout for remote configuration documents")

	root.SetVersionTemplate("searchdown {{.Version}}\n")

	root.AddCommand(
		a.newCheckCommand(),
		a.newFilterCommand(),
		a.newRenderCommand(),
		a.newPromptCommand(),
		a.newServeCommand(),
	)
	return root
}

// setupCommand resolves configuration once flags are parsed.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}
	if err := loadEnvFiles(envFile); err != nil {
		return err
	}
	if err := a.viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if a.config == nil {
		cfg, err := LoadConfig(a.viper)
		if err != nil {
			return err
		}
		a.config = cfg
	}
	if a.logger == nil {
		logger := NewLogger(a.config, a.errOut)
		a.logger = &logger
	}
	return nil
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("searchdown: " + err.Error() + "\n")
		os.Exit(1)
	}
}
