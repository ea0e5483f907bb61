// SPDX-License-Identifier: MPL-2.0

// Package launch runs snapshot images as foreground container processes.
// A launch always uses the entry command baked into the snapshot, wires
// the host's standard streams, and surfaces the application's exit code
// verbatim. Environment is composed from dotenv files and inline
// variables; nothing else crosses into the container.
package launch
