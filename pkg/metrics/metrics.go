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

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/bcm-node-labeler/pkg/bcm"
)

// sentinel is reported for info labels when the backing fact is absent.
const sentinel = "unknown"

// Stage labels for sync error classification.
const (
	StageFetch = "fetch"
	StageApply = "apply"
)

// Metrics is the fixed set of gauges the labeler exports. Each
// reconciliation cycle overwrites the previous values; there is no
// aggregation across cycles. All writes happen on the reconciliation
// goroutine, scrapes read concurrently through the registry.
type Metrics struct {
	nodeInfo       *prometheus.GaugeVec
	hardwareHealth *prometheus.GaugeVec
	gpuCount       prometheus.Gauge
	cpuCount       prometheus.Gauge
	memoryGB       prometheus.Gauge
	lastSync       prometheus.Gauge

	syncsTotal    prometheus.Counter
	syncErrors    *prometheus.CounterVec
	syncDuration  prometheus.Histogram
	labelsApplied prometheus.Gauge
}

// New registers the labeler metric set with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		nodeInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bcm_node_info",
			Help: "BCM node information (value is always 1).",
		}, []string{"node_name", "bcm_cluster"}),

		hardwareHealth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bcm_hardware_health",
			Help: "Hardware health status per component.",
		}, []string{"component"}),

		gpuCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bcm_gpu_count",
			Help: "Number of GPUs detected.",
		}),

		cpuCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bcm_cpu_count",
			Help: "Number of CPUs.",
		}),

		memoryGB: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bcm_memory_gb",
			Help: "Total memory in GB.",
		}),

		lastSync: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bcm_last_sync_timestamp",
			Help: "Last BCM sync timestamp (unix seconds).",
		}),

		syncsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bcm_syncs_total",
			Help: "Total number of reconciliation cycles attempted.",
		}),

		syncErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bcm_sync_errors_total",
			Help: "Total number of reconciliation cycles that failed, by stage.",
		}, []string{"stage"}),

		syncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bcm_sync_duration_seconds",
			Help:    "Duration of reconciliation cycles, in seconds.",
			Buckets: prometheus.DefBuckets,
		}),

		labelsApplied: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bcm_labels_applied",
			Help: "Number of labels applied in the last successful sync.",
		}),
	}
}

// Update projects the fact mapping onto the gauge set. It never fails:
// absent numeric facts default to zero and absent info facts default to
// the "unknown" sentinel.
func (m *Metrics) Update(facts bcm.Facts) {
	nodeName := facts.Str(bcm.FactNodeName)
	if nodeName == "" {
		nodeName = sentinel
	}
	cluster := facts.Str(bcm.FactHost)
	if cluster == "" {
		cluster = sentinel
	}

	// Reset keeps the info record last-write-wins when identity changes.
	m.nodeInfo.Reset()
	m.nodeInfo.WithLabelValues(nodeName, cluster).Set(1)

	m.gpuCount.Set(facts.Float(bcm.FactGPUCount))
	m.cpuCount.Set(facts.Float(bcm.FactCPUCount))
	m.memoryGB.Set(facts.Float(bcm.FactMemoryGB))
	m.lastSync.Set(facts.Float(bcm.FactTimestamp))

	m.hardwareHealth.Reset()
	if health, ok := facts["hardware_health"].(map[string]any); ok {
		for component := range health {
			m.hardwareHealth.WithLabelValues(component).Set(bcm.Facts(health).Float(component))
		}
	}
}

// IncSync counts one attempted reconciliation cycle.
func (m *Metrics) IncSync() {
	m.syncsTotal.Inc()
}

// IncSyncError counts one failed cycle for the given stage.
func (m *Metrics) IncSyncError(stage string) {
	m.syncErrors.WithLabelValues(stage).Inc()
}

// ObserveSyncDuration records the duration of one cycle.
func (m *Metrics) ObserveSyncDuration(d time.Duration) {
	m.syncDuration.Observe(d.Seconds())
}

// SetLabelsApplied records how many labels the last apply pushed.
func (m *Metrics) SetLabelsApplied(n int) {
	m.labelsApplied.Set(float64(n))
}
