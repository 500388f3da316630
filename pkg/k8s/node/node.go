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

package node

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/NVIDIA/bcm-node-labeler/pkg/errors"
	"github.com/NVIDIA/bcm-node-labeler/pkg/k8s/client"
	"github.com/NVIDIA/bcm-node-labeler/pkg/labels"
)

// Applier pushes projected label sets onto a single node. It issues a JSON
// merge-patch of metadata.labels, so unrelated labels are never touched and
// reapplying the same set is a no-op on the node state.
type Applier struct {
	// Client is the Kubernetes client to use.
	Client client.Interface
	// NodeName is the node to patch, resolved once at startup.
	NodeName string
	// Prefix is the namespace prepended to every label key.
	Prefix string
}

// mergePatch mirrors the metadata.labels fragment of a node object.
type mergePatch struct {
	Metadata struct {
		Labels map[string]string `json:"labels"`
	} `json:"metadata"`
}

// Apply prefixes the label keys and patches the node. It performs no
// retries; the reconciliation loop retries naturally on its next cycle.
// Keys that do not survive prefixing as valid qualified names are skipped
// with a warning rather than failing the whole patch.
func (a *Applier) Apply(ctx context.Context, labelSet map[string]string) error {
	if a.Client == nil {
		return errors.New(errors.ErrCodeApplyFailure, "kubernetes client not configured")
	}
	if a.NodeName == "" {
		return errors.New(errors.ErrCodeApplyFailure, "node name not configured")
	}

	prefixed := make(map[string]string, len(labelSet))
	for name, value := range labelSet {
		key, err := labels.QualifiedKey(a.Prefix, name)
		if err != nil {
			slog.Warn("skipping invalid label key",
				slog.String("name", name),
				slog.String("error", err.Error()))
			continue
		}
		prefixed[key] = value
	}

	if len(prefixed) == 0 {
		slog.Debug("no valid labels to apply", slog.String("node", a.NodeName))
		return nil
	}

	var patch mergePatch
	patch.Metadata.Labels = prefixed

	data, err := json.Marshal(patch)
	if err != nil {
		return errors.Wrap(errors.ErrCodeApplyFailure, "failed to encode label patch", err)
	}

	if _, err := a.Client.CoreV1().Nodes().Patch(ctx, a.NodeName,
		types.MergePatchType, data, metav1.PatchOptions{}); err != nil {
		return errors.WrapWithContext(errors.ErrCodeApplyFailure,
			"failed to patch node labels", err,
			map[string]any{"node": a.NodeName, "labels": len(prefixed)})
	}

	slog.Info("applied node labels",
		slog.String("node", a.NodeName),
		slog.Int("count", len(prefixed)))

	return nil
}

// ResolveNodeName determines the node identity once at startup. The
// override wins when set; otherwise the environment is consulted the way
// the Downward API populates it, with the OS hostname as last resort.
func ResolveNodeName(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	// Preferred: NODE_NAME set via Downward API
	if nodeName := os.Getenv("NODE_NAME"); nodeName != "" {
		return nodeName, nil
	}

	// Alternative: KUBERNETES_NODE_NAME
	if nodeName := os.Getenv("KUBERNETES_NODE_NAME"); nodeName != "" {
		return nodeName, nil
	}

	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to determine node name: %w", err)
	}

	slog.Warn("NODE_NAME not set, using hostname", slog.String("hostname", hostname))
	return hostname, nil
}
