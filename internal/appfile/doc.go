// SPDX-License-Identifier: MPL-2.0

// Package appfile resolves the single application file of a snapshot: its
// runtime flavor (python, node, ruby, shell), the interpreter for the entry
// command, and the content hash that feeds the snapshot cache key.
package appfile
