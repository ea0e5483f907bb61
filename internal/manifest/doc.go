// SPDX-License-Identifier: MPL-2.0

// Package manifest parses dependency manifests: one package specifier per
// line, optionally version-pinned. The canonical form and its hash feed the
// snapshot cache key so identical dependency sets build identical snapshots.
package manifest
