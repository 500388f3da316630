/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/bcm-node-labeler/pkg/labeler"
	"github.com/NVIDIA/bcm-node-labeler/pkg/logging"
)

const (
	name           = "bcm-node-labeler"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Run parses arguments and runs the daemon until it exits or receives
// SIGINT/SIGTERM. This is called by main.main().
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd().Run(ctx, os.Args)
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: version,
		Usage:   "Export BCM hardware facts as Kubernetes node labels and Prometheus metrics",
		Description: fmt.Sprintf(`bcm-node-labeler - BCM node labeling agent

Version: %s
Commit:  %s
Built:   %s

Runs on each BCM-managed node, typically as a DaemonSet. Every cycle it
reads the local BCM agent state file, patches the node's labels under the
configured prefix, and refreshes the Prometheus gauges served on the
metrics port.`, version, commit, date),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "interval",
				Usage:   "Seconds between reconciliation cycles",
				Value:   300,
				Sources: cli.EnvVars("SYNC_INTERVAL"),
			},
			&cli.StringFlag{
				Name:    "label-prefix",
				Usage:   "Namespace prefix for all managed node labels",
				Sources: cli.EnvVars("LABEL_PREFIX"),
			},
			&cli.IntFlag{
				Name:    "metrics-port",
				Usage:   "Prometheus exposition port",
				Sources: cli.EnvVars("METRICS_PORT"),
			},
			&cli.BoolFlag{
				Name:  "disable-labeling",
				Usage: "Skip node label application, keep exporting metrics",
			},
			&cli.BoolFlag{
				Name:  "metrics-only",
				Usage: "Tolerate a missing Kubernetes API at startup and degrade to metrics-only operation",
			},
			&cli.StringFlag{
				Name:  "node-name",
				Usage: "Override node identity detection (defaults to NODE_NAME or the hostname)",
			},
			&cli.StringFlag{
				Name:  "kubeconfig",
				Usage: "Path to a kubeconfig file (defaults to in-cluster configuration)",
			},
			&cli.StringFlag{
				Name:    "source",
				Usage:   "Path to the BCM agent state file",
				Sources: cli.EnvVars("BCM_STATE_PATH"),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to an optional YAML config file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Shorthand for --log-level debug",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logLevel := cmd.String("log-level")
			if cmd.Bool("debug") {
				logLevel = "debug"
			}
			logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)

			slog.Info("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", logLevel)

			config, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			return labeler.Run(ctx, config, version)
		},
	}
}

// buildConfig layers configuration: defaults, then the optional config
// file, then any flags set on the command line or via environment.
func buildConfig(cmd *cli.Command) (labeler.Config, error) {
	config := labeler.NewConfig()

	if path := cmd.String("config"); path != "" {
		if err := config.LoadFile(path); err != nil {
			return config, err
		}
	}

	if cmd.IsSet("interval") {
		config.Interval = time.Duration(cmd.Int("interval")) * time.Second
	}
	if cmd.IsSet("label-prefix") {
		config.LabelPrefix = cmd.String("label-prefix")
	}
	if cmd.IsSet("metrics-port") {
		config.MetricsPort = int(cmd.Int("metrics-port"))
	}
	if cmd.IsSet("disable-labeling") {
		config.DisableLabeling = cmd.Bool("disable-labeling")
	}
	if cmd.IsSet("metrics-only") {
		config.MetricsOnly = cmd.Bool("metrics-only")
	}
	if cmd.IsSet("node-name") {
		config.NodeName = cmd.String("node-name")
	}
	if cmd.IsSet("kubeconfig") {
		config.Kubeconfig = cmd.String("kubeconfig")
	}
	if cmd.IsSet("source") {
		config.SourcePath = cmd.String("source")
	}

	return config, nil
}
