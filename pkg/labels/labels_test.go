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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/bcm-node-labeler/pkg/bcm"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name     string
		facts    bcm.Facts
		expected map[string]string
	}{
		{
			name:     "node and cluster facts",
			facts:    bcm.Facts{"node_name": "node-1", "host": "cluster-a"},
			expected: map[string]string{"node-name": "node-1", "bcm-cluster": "cluster-a"},
		},
		{
			name:     "value requiring sanitization",
			facts:    bcm.Facts{"host": "cluster/a b:c"},
			expected: map[string]string{"bcm-cluster": "cluster_a-b-c"},
		},
		{
			name:     "unrecognized facts ignored",
			facts:    bcm.Facts{"gpu_count": float64(8), "secret": "x"},
			expected: map[string]string{},
		},
		{
			name:     "empty facts",
			facts:    bcm.Facts{},
			expected: map[string]string{},
		},
		{
			name:     "present but empty value becomes sentinel",
			facts:    bcm.Facts{"host": ""},
			expected: map[string]string{"bcm-cluster": "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Project(tt.facts))
		})
	}
}

func TestProjectIsPure(t *testing.T) {
	facts := bcm.Facts{"node_name": "node-1"}

	first := Project(facts)
	second := Project(facts)

	assert.Equal(t, first, second)
	assert.Equal(t, bcm.Facts{"node_name": "node-1"}, facts)

	// Mutating the output must not leak back into a later projection.
	first["node-name"] = "tampered"
	assert.Equal(t, "node-1", Project(facts)["node-name"])
}

func TestSanitizeValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain value", "node-1", "node-1"},
		{"slash space colon", "cluster/a b:c", "cluster_a-b-c"},
		{"empty", "", "unknown"},
		{"only trim characters", "-_.", "unknown"},
		{"leading and trailing junk", "-node_", "node"},
		{"trailing dot", "cluster.", "cluster"},
		{"long value truncated", strings.Repeat("a", 100), strings.Repeat("a", 63)},
		{"truncated then trimmed", strings.Repeat("a", 62) + "--", strings.Repeat("a", 62)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeValue(tt.input))
		})
	}
}

func TestSanitizeValueInvariants(t *testing.T) {
	inputs := []string{
		"", "a", "cluster/a b:c", strings.Repeat("x y:z/", 40),
		"...", "___", "normal-value", " leading and trailing ",
	}

	for _, in := range inputs {
		got := SanitizeValue(in)

		assert.LessOrEqual(t, len(got), 63, "input %q", in)
		assert.NotContains(t, got, "/", "input %q", in)
		assert.NotContains(t, got, " ", "input %q", in)
		assert.NotContains(t, got, ":", "input %q", in)
		assert.NotEmpty(t, got, "input %q", in)

		for _, edge := range []byte{got[0], got[len(got)-1]} {
			assert.NotContains(t, "-_.", string(edge), "input %q produced %q", in, got)
		}
	}
}

func TestQualifiedKey(t *testing.T) {
	key, err := QualifiedKey("bcm.nvidia.com", "node-name")
	require.NoError(t, err)
	assert.Equal(t, "bcm.nvidia.com/node-name", key)

	key, err = QualifiedKey("", "node-name")
	require.NoError(t, err)
	assert.Equal(t, "node-name", key)
}

func TestQualifiedKeyRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		label  string
	}{
		{"empty name", "bcm.nvidia.com", ""},
		{"name too long", "bcm.nvidia.com", strings.Repeat("a", 64)},
		{"prefix too long", strings.Repeat("a", 254), "node-name"},
		{"bad characters", "bcm.nvidia.com", "no spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := QualifiedKey(tt.prefix, tt.label)
			assert.Error(t, err)
		})
	}
}
