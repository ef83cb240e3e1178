// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/ck3pp/ck3pp/cmd/ck3pp"

func main() {
	cmd.Execute()
}
