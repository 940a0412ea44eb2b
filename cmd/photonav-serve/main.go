// Command photonav-serve runs the one-shot TCP boundary (C8): it accepts
// a single exploration request from the configured peer, plans a tour of
// the request's obstacles, and replies with the command stream.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"go.viam.com/photonav/config"
	"go.viam.com/photonav/logging"
	"go.viam.com/photonav/server"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string
	var repeat bool
	var logLevel string
	var logFile string

	cmd := &cobra.Command{
		Use:   "photonav-serve",
		Short: "Serve the photonav TCP boundary",
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := zapcore.ParseLevel(logLevel)
			if err != nil {
				return errors.Wrapf(err, "parsing --log-level %q", logLevel)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return errors.Wrap(err, "loading config")
			}

			file := logFile
			if file == "" {
				file = cfg.LogFile
			}
			logger := logging.NewLogger("photonav-serve", level)
			if file != "" {
				appender, closer := logging.NewFileAppender(file)
				defer closer.Close()
				logger = logging.NewLogger("photonav-serve", level, appender)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			if configPath != "" {
				if err := config.Watch(configPath, func(next config.Config) {
					logger.Infow("config reloaded", "path", configPath)
					cfg = next
				}); err != nil {
					logger.Warnw("failed to watch config for changes", "err", err.Error())
				}
			}

			srv := server.New(cfg, logger)
			return srv.ListenAndServe(ctx, repeat)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a JSON/YAML config file (optional)")
	cmd.Flags().BoolVar(&repeat, "repeat", false, "keep accepting connections instead of exiting after the first (development only)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFile, "log-file", "", "path to a log file (enables lumberjack rotation); overrides config's log_file")

	return cmd
}
