// Package main is the entry point for the Doctors Copilot CLI.
// It provides a terminal dashboard client for the patient insights API.
package main

import (
	"copilot/cli/cmd"
)

func main() {
	cmd.Execute()
}
