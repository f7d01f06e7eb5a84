// SPDX-License-Identifier: MPL-2.0

// freight publishes packages and their documentation to the freight registry.
package main

import cmd "freight-cli/cmd/freight"

func main() {
	cmd.Execute()
}
