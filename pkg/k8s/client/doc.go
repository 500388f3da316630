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

// Package client provides a singleton Kubernetes client for the labeler.
//
// The labeler talks to the API server from exactly one goroutine, once per
// reconciliation cycle, so a single cached client is all it ever needs. The
// client is initialized on first use and held for the process lifetime:
//
//	clientset, _, err := client.GetKubeClient(kubeconfig)
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//
// # Authentication Modes
//
// In-cluster (running as a DaemonSet pod):
//   - Uses service account credentials mounted into the pod
//   - No additional configuration required
//
// Out-of-cluster (local testing):
//   - Explicit --kubeconfig flag, then KUBECONFIG environment variable
//   - Falls back to ~/.kube/config
//   - Returns an error if no valid kubeconfig is found
//
// # Testing
//
// The Interface alias lets tests substitute fake.NewSimpleClientset()
// anywhere a real clientset is expected.
package client
