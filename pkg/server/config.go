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

package server

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/bcm-node-labeler/pkg/defaults"
)

// Config holds the exposition server configuration.
type Config struct {
	// Server identity, used in log records.
	Name    string
	Version string

	// Listen address and port.
	Address string
	Port    int

	// Rate limiting for the metrics endpoint. Scrapes are cheap but the
	// endpoint is unauthenticated, so a generous limit still applies.
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Name:            "metrics-server",
		Version:         "undefined",
		Address:         "",
		Port:            defaults.MetricsPort,
		RateLimit:       10, // 10 req/s is ample for scrapers
		RateLimitBurst:  20,
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
	}
}
