package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"eurodist/internal/bootstrap"
	"eurodist/internal/platform/config"
	"eurodist/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	overrides  config.Overrides
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "eurodist",
		Short:         "Browse road distances between European cities",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.StringVar(&opts.overrides.Driver, "driver", "", "database driver: sqlite|postgres|mysql")
	flags.StringVar(&opts.overrides.DBPath, "db", "", "sqlite file path or server DSN (default "+config.DefaultDBPath+")")
	flags.StringVar(&opts.overrides.ConnectionName, "connection", "", "connection name used in logs")
	flags.StringVar(&opts.overrides.DefaultCity, "default-city", "", "city shown by the default report (default "+config.DefaultCity+")")
	flags.StringVar(&opts.overrides.LogLevel, "log-level", "", "debug|info|warn|error|disabled")
	flags.StringVar(&opts.overrides.LogFile, "log-file", "", "append JSON logs to this file")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newCitiesCmd(opts))
	root.AddCommand(newSeedCmd(opts))
	root.AddCommand(newExportCmd(opts))
	return root
}

// loadApp resolves configuration and wires the application. Console logs go
// to logOut; the returned closer flushes a log file if one is configured.
func loadApp(opts *rootOptions, logOut io.Writer) (*bootstrap.App, io.Closer, error) {
	cfg, err := config.Load(opts.configPath, opts.overrides)
	if err != nil {
		return nil, nil, err
	}
	log, closer, err := logging.New(logOut, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	log = log.With().Str("conn", cfg.ConnectionName).Logger()
	app, err := bootstrap.New(cfg, log)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return app, closer, nil
}

func runTUI(opts *rootOptions) error {
	// Console logging would draw over the alternate screen.
	app, closer, err := loadApp(opts, io.Discard)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	return bootstrap.RunTUI(app)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive distance viewer",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts)
		},
	}
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var city string
	var plain bool
	cmd := &cobra.Command{
		Use:   "report [--city <text>]",
		Short: "Print the default report, or the report for cities matching --city",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closer, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			var filter *string
			if cmd.Flags().Changed("city") {
				filter = &city
			}
			out, err := app.DistanceCLI.Report(context.Background(), filter)
			if err != nil {
				return err
			}
			if plain {
				writePlainReport(cmd.OutOrStdout(), out)
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderReport(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "substring of the starting city name")
	cmd.Flags().BoolVar(&plain, "plain", false, "tab-separated output")
	return cmd
}

func newCitiesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the selectable cities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closer, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			out, err := app.DistanceCLI.Cities(context.Background())
			if err != nil {
				return err
			}
			if len(out.Names) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no cities")
				return nil
			}
			for _, name := range out.Names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml|file.json>",
		Short: "Create the schema and replace all cities and distances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closer, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			out, err := app.DatasetCLI.Seed(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded cities=%d distances=%d\n", out.Cities, out.Distances)
			return nil
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var city, path string
	cmd := &cobra.Command{
		Use:   "export [--city <text>] [--out <file.xlsx>]",
		Short: "Write a report to an Excel workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closer, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			var filter *string
			if cmd.Flags().Changed("city") {
				filter = &city
			}
			out, err := app.DatasetCLI.Export(context.Background(), filter, path)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported rows=%d file=%s\n", out.Rows, out.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "substring of the starting city name")
	cmd.Flags().StringVar(&path, "out", "", "output file (default <city>-distances.xlsx)")
	return cmd
}
