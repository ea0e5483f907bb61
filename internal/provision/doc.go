// SPDX-License-Identifier: MPL-2.0

// Package provision implements the snapshot build pipeline: base runtime
// image, dependency installation, application placement, entry command.
//
// Builder models the build as a pure function from (base image, manifest,
// application file) to an immutable tagged image. Snapshots are cached by a
// sha256 key over all inputs; rebuilding with unchanged inputs reuses the
// existing image. Any step failure aborts the build; no partial-install
// state is ever considered a valid snapshot.
package provision
