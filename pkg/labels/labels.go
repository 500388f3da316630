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

package labels

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/NVIDIA/bcm-node-labeler/pkg/bcm"
)

// ValueUnknown is the sentinel substituted for empty or unmappable values.
const ValueUnknown = "unknown"

// maxValueLen is the Kubernetes label value length limit.
const maxValueLen = 63

// projections is the allow-list of BCM facts exposed as node labels.
// Facts not listed here never become labels, regardless of what the
// state file contains.
var projections = []struct {
	fact  string
	label string
}{
	{bcm.FactNodeName, "node-name"},
	{bcm.FactHost, "bcm-cluster"},

	// Hardware-derived labels (gpu-count, cpu-model, memory-gb) stay out
	// until cm-lite-daemon publishes them under a stable contract.
}

// Project maps recognized facts to unprefixed label name/value pairs.
// It is a pure function of its input: missing facts are omitted, values
// are sanitized, and no recognized facts yields an empty map.
func Project(facts bcm.Facts) map[string]string {
	out := make(map[string]string, len(projections))

	for _, p := range projections {
		if !facts.Has(p.fact) {
			continue
		}
		out[p.label] = SanitizeValue(facts.Str(p.fact))
	}

	return out
}

// SanitizeValue coerces a raw fact value into a valid Kubernetes label
// value: at most 63 characters, '/' replaced with '_', spaces and ':'
// replaced with '-', and no leading or trailing '-', '_' or '.'.
// Values that sanitize to nothing become the "unknown" sentinel.
func SanitizeValue(value string) string {
	if value == "" {
		return ValueUnknown
	}

	if len(value) > maxValueLen {
		value = value[:maxValueLen]
	}

	value = strings.NewReplacer("/", "_", " ", "-", ":", "-").Replace(value)
	value = strings.Trim(value, "-_.")

	if value == "" {
		return ValueUnknown
	}
	return value
}

// QualifiedKey joins the label namespace prefix and name, validating the
// result against the Kubernetes qualified-name rules (prefix is a DNS
// subdomain of at most 253 characters, name at most 63).
func QualifiedKey(prefix, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("label name cannot be empty")
	}

	key := name
	if prefix != "" {
		key = prefix + "/" + name
	}

	if errs := validation.IsQualifiedName(key); len(errs) > 0 {
		return "", fmt.Errorf("invalid label key %q: %s", key, strings.Join(errs, "; "))
	}

	return key, nil
}
