// Package main is the entry point for the patchbay CLI.
package main

import "github.com/vyorkin/patchbay/cmd"

func main() {
	cmd.Execute()
}
