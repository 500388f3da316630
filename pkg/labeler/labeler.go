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

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/bcm-node-labeler/pkg/bcm"
	"github.com/NVIDIA/bcm-node-labeler/pkg/defaults"
	"github.com/NVIDIA/bcm-node-labeler/pkg/errors"
	"github.com/NVIDIA/bcm-node-labeler/pkg/labels"
	"github.com/NVIDIA/bcm-node-labeler/pkg/metrics"
)

// Source produces the current fact mapping for this node.
type Source interface {
	Fetch() (bcm.Facts, error)
}

// Applier pushes a projected label set onto the node.
type Applier interface {
	Apply(ctx context.Context, labelSet map[string]string) error
}

// Labeler drives the reconciliation loop. Each cycle fetches facts,
// updates the metric state, and applies the projected labels. Cycles are
// independent; a failed cycle never carries state into the next one.
type Labeler struct {
	config  Config
	source  Source
	applier Applier
	metrics *metrics.Metrics
	clock   clock.WithTicker
}

// Option configures optional Labeler behavior.
type Option func(*Labeler)

// WithClock replaces the wall clock, used by tests to drive the loop.
func WithClock(c clock.WithTicker) Option {
	return func(l *Labeler) {
		l.clock = c
	}
}

// New creates a Labeler. The applier may be nil when labeling is
// disabled; the loop then only maintains metric state.
func New(config Config, source Source, applier Applier, m *metrics.Metrics, opts ...Option) *Labeler {
	l := &Labeler{
		config:  config,
		source:  source,
		applier: applier,
		metrics: m,
		clock:   clock.RealClock{},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Run executes an immediate cycle and then reconciles on the configured
// interval until the context is canceled. Failed cycles back off briefly
// before the schedule resumes; they never terminate the loop.
func (l *Labeler) Run(ctx context.Context) error {
	slog.Info("starting reconciliation loop",
		slog.String("interval", l.config.Interval.String()),
		slog.String("prefix", l.config.LabelPrefix),
		slog.Bool("labeling", !l.config.DisableLabeling && l.applier != nil))

	l.cycle(ctx)

	ticker := l.clock.NewTicker(l.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("reconciliation loop stopped")
			return nil
		case <-ticker.C():
			if err := l.cycle(ctx); err != nil {
				select {
				case <-ctx.Done():
					slog.Info("reconciliation loop stopped")
					return nil
				case <-l.clock.After(defaults.FailureBackoff):
				}
			}
		}
	}
}

// cycle performs one reconciliation pass. Panics are contained so a bad
// fact payload cannot take the daemon down.
func (l *Labeler) cycle(ctx context.Context) (err error) {
	start := l.clock.Now()
	cycleID := uuid.New().String()

	l.metrics.IncSync()

	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeInternal, fmt.Sprintf("panic in reconciliation cycle: %v", r))
			l.metrics.IncSyncError(metrics.StageFetch)
			slog.Error("recovered from panic in reconciliation cycle",
				slog.String("cycle", cycleID),
				slog.Any("panic", r))
		}
		l.metrics.ObserveSyncDuration(l.clock.Since(start))
	}()

	facts, err := l.source.Fetch()
	if err != nil {
		l.metrics.IncSyncError(metrics.StageFetch)
		slog.Warn("no BCM data available, skipping cycle",
			slog.String("cycle", cycleID),
			slog.String("error", err.Error()))
		return err
	}

	l.metrics.Update(facts)

	if l.config.DisableLabeling || l.applier == nil {
		slog.Debug("labeling disabled, metrics updated only", slog.String("cycle", cycleID))
		return nil
	}

	labelSet := labels.Project(facts)
	if len(labelSet) == 0 {
		slog.Debug("no labels projected from facts", slog.String("cycle", cycleID))
		return nil
	}

	applyCtx, cancel := context.WithTimeout(ctx, defaults.ApplyTimeout)
	defer cancel()

	if err := l.applier.Apply(applyCtx, labelSet); err != nil {
		l.metrics.IncSyncError(metrics.StageApply)
		slog.Error("failed to apply node labels",
			slog.String("cycle", cycleID),
			slog.String("error", err.Error()))
		return err
	}

	l.metrics.SetLabelsApplied(len(labelSet))

	slog.Debug("reconciliation cycle complete",
		slog.String("cycle", cycleID),
		slog.Int("labels", len(labelSet)))

	return nil
}
