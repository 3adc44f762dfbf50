// Package main provides a command-line utility for inspecting ECLIPSE
// keyword-array files.
package main

import "github.com/scigolib/eclio/cmd/eclarrays/cmd"

func main() {
	cmd.Execute()
}
