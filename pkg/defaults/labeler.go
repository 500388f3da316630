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

// Labeler defaults shared by the CLI and the reconciliation loop.
const (
	// LabelPrefix is the namespace prepended to every projected node label.
	LabelPrefix = "bcm.nvidia.com"

	// MetricsPort is the default Prometheus exposition port.
	MetricsPort = 9100

	// SourcePath is the default location of the BCM agent state file.
	SourcePath = "/etc/bcm-agent/config.json"

	// SourceMaxBytes caps the size of the BCM state file read each cycle.
	SourceMaxBytes = 1 << 20 // 1MB
)
