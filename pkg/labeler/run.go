// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package labeler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/bcm-node-labeler/pkg/bcm"
	"github.com/NVIDIA/bcm-node-labeler/pkg/errors"
	"github.com/NVIDIA/bcm-node-labeler/pkg/k8s/client"
	"github.com/NVIDIA/bcm-node-labeler/pkg/k8s/node"
	"github.com/NVIDIA/bcm-node-labeler/pkg/metrics"
	"github.com/NVIDIA/bcm-node-labeler/pkg/server"
)

// Run wires the full daemon from a validated configuration: node
// identity, the fact source, the label applier, the metric set, and the
// exposition server, then drives the server and the reconciliation loop
// until the context is canceled.
func Run(ctx context.Context, config Config, version string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	nodeName, err := node.ResolveNodeName(config.NodeName)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStartupFailure, "failed to resolve node identity", err)
	}

	source := bcm.NewSource(nodeName, bcm.WithPath(config.SourcePath))

	var applier Applier
	if !config.DisableLabeling {
		clientset, _, err := client.GetKubeClient(config.Kubeconfig)
		if err != nil {
			if !config.MetricsOnly {
				return errors.Wrap(errors.ErrCodeStartupFailure,
					"kubernetes api unavailable and metrics-only mode not enabled", err)
			}
			slog.Warn("kubernetes api unavailable, continuing in metrics-only mode",
				slog.String("error", err.Error()))
			config.DisableLabeling = true
		} else {
			applier = &node.Applier{
				Client:   clientset,
				NodeName: nodeName,
				Prefix:   config.LabelPrefix,
			}
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricSet := metrics.New(registry)

	serverConfig := server.NewConfig()
	serverConfig.Name = "bcm-node-labeler"
	serverConfig.Version = version
	serverConfig.Port = config.MetricsPort

	srv := server.New(serverConfig, registry)

	labeler := New(config, source, applier, metricSet)

	slog.Info("starting bcm-node-labeler",
		slog.String("version", version),
		slog.String("node", nodeName),
		slog.Int("metricsPort", config.MetricsPort))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		return labeler.Run(gctx)
	})

	// No-ops outside a systemd unit with NOTIFY_SOCKET set.
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	defer func() {
		_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	}()

	if err := g.Wait(); err != nil {
		return fmt.Errorf("labeler terminated: %w", err)
	}

	slog.Info("bcm-node-labeler stopped")
	return nil
}
