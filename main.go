// SPDX-License-Identifier: MPL-2.0

// Command appcrate packages single-file applications into runnable
// container snapshots.
package main

import (
	cmd "appcrate-cli/cmd/appcrate"
)

func main() {
	cmd.Execute()
}
