// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for appcrate.
//
// This package implements the Cobra command hierarchy for the appcrate CLI:
// building snapshot images from an application file and its dependency
// manifest, launching snapshots, and managing the local snapshot inventory.
package cmd
