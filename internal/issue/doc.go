// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error context and a catalog of known
// failure modes with rendered markdown guidance.
//
// ActionableError carries the operation, the resource involved, and fix
// suggestions; ErrorContext is its fluent builder. The issue catalog backs
// 'appcrate doctor' and verbose error display.
package issue
