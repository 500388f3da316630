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

package bcm

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/NVIDIA/bcm-node-labeler/pkg/defaults"
	"github.com/NVIDIA/bcm-node-labeler/pkg/errors"
)

// Option configures a Source.
type Option func(*Source)

// WithPath overrides the BCM agent state file location.
func WithPath(path string) Option {
	return func(s *Source) {
		s.path = path
	}
}

// WithMaxBytes overrides the maximum state file size accepted.
func WithMaxBytes(max int) Option {
	return func(s *Source) {
		s.maxBytes = max
	}
}

// WithNow overrides the time source. Used in tests.
func WithNow(now func() time.Time) Option {
	return func(s *Source) {
		s.now = now
	}
}

// Source reads the hardware/cluster fact mapping maintained by the local
// BCM agent (cm-lite-daemon). It is safe to call Fetch repeatedly; each
// call re-reads the state file.
type Source struct {
	nodeName string
	path     string
	maxBytes int
	now      func() time.Time
}

// NewSource creates a Source for the given node identity.
func NewSource(nodeName string, opts ...Option) *Source {
	s := &Source{
		nodeName: nodeName,
		path:     defaults.SourcePath,
		maxBytes: defaults.SourceMaxBytes,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the current fact mapping. The node name and fetch
// timestamp are always present; facts from the state file are merged on
// top when the file exists. A missing file is not an error; the daemon
// may start before the BCM agent has written any state. An unreadable,
// oversized, or malformed file is reported as SOURCE_UNAVAILABLE.
func (s *Source) Fetch() (Facts, error) {
	facts := Facts{
		FactNodeName:  s.nodeName,
		FactTimestamp: float64(s.now().Unix()),
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("bcm state file absent, using base facts only",
				slog.String("path", s.path))
			return facts, nil
		}
		return nil, errors.WrapWithContext(errors.ErrCodeSourceUnavailable,
			"failed to read bcm state file", err,
			map[string]any{"path": s.path})
	}

	if len(b) > s.maxBytes {
		return nil, errors.NewWithContext(errors.ErrCodeSourceUnavailable,
			"bcm state file exceeds maximum size",
			map[string]any{"path": s.path, "size": len(b), "max": s.maxBytes})
	}

	if !utf8.Valid(b) {
		return nil, errors.NewWithContext(errors.ErrCodeSourceUnavailable,
			"bcm state file is not valid UTF-8",
			map[string]any{"path": s.path})
	}

	var state map[string]any
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeSourceUnavailable,
			"failed to parse bcm state file", err,
			map[string]any{"path": s.path})
	}

	for k, v := range state {
		facts[k] = v
	}

	slog.Debug("fetched bcm facts",
		slog.String("path", s.path),
		slog.Int("count", len(facts)))

	return facts, nil
}
