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

package defaults

import (
	"testing"
	"time"
)

func TestLoopTimingRelationships(t *testing.T) {
	if FailureBackoff >= SyncInterval {
		t.Errorf("FailureBackoff (%v) should be well below SyncInterval (%v)", FailureBackoff, SyncInterval)
	}
	if ApplyTimeout >= SyncInterval {
		t.Errorf("ApplyTimeout (%v) should be below SyncInterval (%v)", ApplyTimeout, SyncInterval)
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	if ServerReadTimeout >= ServerWriteTimeout {
		t.Errorf("ServerReadTimeout (%v) should be below ServerWriteTimeout (%v)", ServerReadTimeout, ServerWriteTimeout)
	}
	if ServerIdleTimeout <= ServerWriteTimeout {
		t.Errorf("ServerIdleTimeout (%v) should exceed ServerWriteTimeout (%v)", ServerIdleTimeout, ServerWriteTimeout)
	}
}

func TestPositiveDurations(t *testing.T) {
	durations := map[string]time.Duration{
		"SyncInterval":          SyncInterval,
		"FailureBackoff":        FailureBackoff,
		"ApplyTimeout":          ApplyTimeout,
		"ServerReadTimeout":     ServerReadTimeout,
		"ServerWriteTimeout":    ServerWriteTimeout,
		"ServerIdleTimeout":     ServerIdleTimeout,
		"ServerShutdownTimeout": ServerShutdownTimeout,
	}

	for name, d := range durations {
		if d <= 0 {
			t.Errorf("%s must be positive, got %v", name, d)
		}
	}
}
