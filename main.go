package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"weather-dash/config"
	"weather-dash/di"
	"weather-dash/models"
	"weather-dash/util"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const CLI_SESSION_ID = "cli"

var cfg *config.Config

func main() {
	root := newRootCommand()
	root.AddCommand(newServeCommand(), newSearchCommand(), newRecentCommand())
	cobra.CheckErr(root.Execute())
}

func newRootCommand() *cobra.Command {
	var envFile, logLevel string

	root := &cobra.Command{
		Use:          "weather-dash",
		Short:        "Weather dashboard: city search, 5-day forecast and recent searches",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig(envFile)
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
			zerolog.SetGlobalLevel(parseZerologLevel(cfg.LogLevel))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file to load before reading the environment")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	return root
}

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.ServerAddr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			container, err := di.NewContainer(ctx, cfg)
			if err != nil {
				return err
			}
			defer container.Close()

			return container.WeatherHttpServer.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides SERVER_ADDR)")
	return cmd
}

func newSearchCommand() *cobra.Command {
	var units, session, chartFile string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search a city (or a country, for suggestions) and print the dashboard",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if units == "" {
				units = cfg.DefaultUnits
			}
			if !models.ValidUnits(units) {
				return errors.Errorf("invalid units %q: want %q or %q", units, models.UnitsMetric, models.UnitsImperial)
			}

			ctx := cmd.Context()
			container, err := di.NewContainer(ctx, cfg)
			if err != nil {
				return err
			}
			defer container.Close()

			state, err := container.WeatherService.Search(ctx, session, strings.Join(args, " "), units)
			if err != nil {
				return errors.Wrap(err, "search failed")
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(state); err != nil {
					return errors.Wrap(err, "failed to encode state")
				}
			} else {
				util.PrintDashboardStatePartially(out, state)
			}

			if chartFile != "" && state.HasWeather() {
				if err := writeChart(chartFile, state, container.WeatherService.Location()); err != nil {
					return err
				}
				fmt.Fprintf(out, "Chart written to %s\n", chartFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&units, "units", "", "unit system: metric or imperial (default DEFAULT_UNITS)")
	cmd.Flags().StringVar(&session, "session", CLI_SESSION_ID, "session whose recent searches are updated")
	cmd.Flags().StringVar(&chartFile, "chart", "", "write the forecast chart as HTML to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full state as JSON")
	return cmd
}

func newRecentCommand() *cobra.Command {
	var session string
	var all, clearRecent bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show or clear the recent searches of a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := di.NewContainer(ctx, cfg)
			if err != nil {
				return err
			}
			defer container.Close()
			out := cmd.OutOrStdout()

			if all {
				ids, err := container.RecentSearchDao.ListSessionIDs(ctx)
				if err != nil {
					return errors.Wrap(err, "failed to list sessions")
				}
				for _, id := range ids {
					recent, err := container.RecentSearchService.List(ctx, id)
					if err != nil {
						return errors.Wrapf(err, "failed to read session %s", id)
					}
					fmt.Fprintf(out, "%s: %s\n", id, strings.Join(recent, ", "))
				}
				return nil
			}

			if clearRecent {
				if err := container.RecentSearchService.Clear(ctx, session); err != nil {
					return errors.Wrap(err, "failed to clear recent searches")
				}
				return nil
			}

			recent, err := container.RecentSearchService.List(ctx, session)
			if err != nil {
				return errors.Wrap(err, "failed to read recent searches")
			}
			for i, q := range recent {
				fmt.Fprintf(out, "%d. %s\n", i+1, q)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&session, "session", CLI_SESSION_ID, "session to show")
	cmd.Flags().BoolVar(&all, "all", false, "show every stored session")
	cmd.Flags().BoolVar(&clearRecent, "clear", false, "clear the session's recent searches")
	return cmd
}

func writeChart(path string, state *models.DashboardState, loc *time.Location) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create chart file")
	}
	defer f.Close()
	if err := util.RenderForecastChart(f, state.Current.Name, state.Units, state.Forecast, state.Daily, loc); err != nil {
		return errors.Wrap(err, "failed to render chart")
	}
	return nil
}

// parseZerologLevel converts a string level into zerolog.Level, defaulting to info.
func parseZerologLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "info":
		fallthrough
	default:
		return zerolog.InfoLevel
	}
}
