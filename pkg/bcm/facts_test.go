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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactsStr(t *testing.T) {
	facts := Facts{
		"name":    "node-1",
		"count":   float64(8),
		"whole":   float64(2.5),
		"enabled": true,
		"nested":  map[string]any{"a": 1},
		"nothing": nil,
	}

	tests := []struct {
		key      string
		expected string
	}{
		{"name", "node-1"},
		{"count", "8"},
		{"whole", "2.5"},
		{"enabled", "true"},
		{"nested", ""},
		{"nothing", ""},
		{"missing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, facts.Str(tt.key))
		})
	}
}

func TestFactsFloat(t *testing.T) {
	facts := Facts{
		"float":  float64(3.5),
		"int":    42,
		"text":   "16",
		"badnum": "lots",
		"obj":    []any{1, 2},
	}

	tests := []struct {
		key      string
		expected float64
	}{
		{"float", 3.5},
		{"int", 42},
		{"text", 16},
		{"badnum", 0},
		{"obj", 0},
		{"missing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.InDelta(t, tt.expected, facts.Float(tt.key), 0.0001)
		})
	}
}

func TestFactsHas(t *testing.T) {
	facts := Facts{"present": "x", "nil": nil}

	assert.True(t, facts.Has("present"))
	assert.True(t, facts.Has("nil"))
	assert.False(t, facts.Has("absent"))
}
