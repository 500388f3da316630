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
	"fmt"
	"strconv"
)

// Well-known fact keys produced by the BCM agent state file.
const (
	FactNodeName  = "node_name"
	FactTimestamp = "timestamp"
	FactHost      = "host"
	FactGPUCount  = "gpu_count"
	FactCPUCount  = "cpu_count"
	FactMemoryGB  = "memory_gb"
)

// Facts is the mapping of heterogeneous scalar values collected from BCM
// for one reconciliation cycle. It is produced fresh each cycle and
// discarded after projection; consumers must not retain it.
type Facts map[string]any

// Has reports whether the fact is present.
func (f Facts) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Str returns the fact as a string, rendering numeric scalars with %v.
// Missing facts and non-scalar values return the empty string.
func (f Facts) Str(key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return ""
	}

	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		// Nested objects and arrays have no label representation.
		return ""
	}
}

// Float returns the fact as a float64. Missing or non-numeric facts
// return zero, which is the documented gauge default.
func (f Facts) Float(key string) float64 {
	v, ok := f[key]
	if !ok || v == nil {
		return 0
	}

	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// String renders the fact count, not the content, to keep logs small.
func (f Facts) String() string {
	return fmt.Sprintf("Facts(%d)", len(f))
}
