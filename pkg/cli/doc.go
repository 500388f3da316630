/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli wires command line flags, environment variables, and the
// optional config file into a daemon configuration and runs it.
package cli
