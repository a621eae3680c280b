// Package main is the entry point for the elmscope CLI.
package main

import "elmscope.dev/pkg/elmscope/cmd"

func main() {
	cmd.Execute()
}
