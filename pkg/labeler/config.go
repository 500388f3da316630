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
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/NVIDIA/bcm-node-labeler/pkg/defaults"
	"github.com/NVIDIA/bcm-node-labeler/pkg/errors"
)

// Config carries everything the daemon needs, resolved once at startup
// and passed by reference through the reconciliation loop.
type Config struct {
	// Interval between reconciliation cycles.
	Interval time.Duration
	// LabelPrefix is the namespace for all projected node labels.
	LabelPrefix string
	// MetricsPort is the Prometheus exposition port.
	MetricsPort int
	// DisableLabeling turns off the Kubernetes label path entirely.
	DisableLabeling bool
	// MetricsOnly tolerates a missing Kubernetes API at startup by
	// degrading to metrics-only operation instead of exiting.
	MetricsOnly bool
	// NodeName overrides node identity detection.
	NodeName string
	// Kubeconfig is an explicit kubeconfig path for local testing.
	Kubeconfig string
	// SourcePath is the BCM agent state file location.
	SourcePath string
}

// fileConfig is the YAML shape of the optional config file. Durations
// are expressed in seconds, matching the SYNC_INTERVAL convention.
type fileConfig struct {
	IntervalSeconds int    `yaml:"interval"`
	LabelPrefix     string `yaml:"labelPrefix"`
	MetricsPort     int    `yaml:"metricsPort"`
	DisableLabeling *bool  `yaml:"disableLabeling"`
	MetricsOnly     *bool  `yaml:"metricsOnly"`
	NodeName        string `yaml:"nodeName"`
	Kubeconfig      string `yaml:"kubeconfig"`
	SourcePath      string `yaml:"sourcePath"`
}

// NewConfig returns a Config with the documented defaults.
func NewConfig() Config {
	return Config{
		Interval:    defaults.SyncInterval,
		LabelPrefix: defaults.LabelPrefix,
		MetricsPort: defaults.MetricsPort,
		SourcePath:  defaults.SourcePath,
	}
}

// LoadFile overlays values from a YAML config file onto the Config.
// Unset file fields leave the current values untouched.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, "failed to read config file", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, "failed to parse config file", err)
	}

	if fc.IntervalSeconds > 0 {
		c.Interval = time.Duration(fc.IntervalSeconds) * time.Second
	}
	if fc.LabelPrefix != "" {
		c.LabelPrefix = fc.LabelPrefix
	}
	if fc.MetricsPort > 0 {
		c.MetricsPort = fc.MetricsPort
	}
	if fc.DisableLabeling != nil {
		c.DisableLabeling = *fc.DisableLabeling
	}
	if fc.MetricsOnly != nil {
		c.MetricsOnly = *fc.MetricsOnly
	}
	if fc.NodeName != "" {
		c.NodeName = fc.NodeName
	}
	if fc.Kubeconfig != "" {
		c.Kubeconfig = fc.Kubeconfig
	}
	if fc.SourcePath != "" {
		c.SourcePath = fc.SourcePath
	}

	return nil
}

// Validate checks the configuration before the daemon starts.
func (c *Config) Validate() error {
	if c.Interval < time.Second {
		return errors.NewWithContext(errors.ErrCodeInvalidConfig,
			"sync interval must be at least one second",
			map[string]any{"interval": c.Interval.String()})
	}

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return errors.NewWithContext(errors.ErrCodeInvalidConfig,
			"metrics port out of range",
			map[string]any{"port": c.MetricsPort})
	}

	if !c.DisableLabeling {
		if c.LabelPrefix == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "label prefix cannot be empty")
		}
		if errs := validation.IsDNS1123Subdomain(c.LabelPrefix); len(errs) > 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidConfig,
				"label prefix is not a valid DNS subdomain",
				map[string]any{"prefix": c.LabelPrefix})
		}
	}

	if c.SourcePath == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "source path cannot be empty")
	}

	return nil
}
