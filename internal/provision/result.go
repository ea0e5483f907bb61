// SPDX-License-Identifier: MPL-2.0

package provision

type (
	// Snapshot is the immutable result of a build pipeline run: a tagged
	// image that can be instantiated as a process any number of times with
	// identical starting state.
	Snapshot struct {
		// ImageTag is the snapshot's image reference (e.g., "appcrate-wild-tree-bot:a1b2c3d4e5f6")
		ImageTag string

		// CacheKey is the full content hash over all build inputs
		CacheKey string

		// Dockerfile is the generated Dockerfile content
		Dockerfile string

		// Reused is true when the tag already existed and no build ran
		Reused bool
	}
)
