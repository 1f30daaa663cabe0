// Package main is the entry point for the blasereplay CLI tool, a read-only
// viewer for archived Blaseball games, boss fights, and player histories.
package main

import "github.com/pable/blasereplay/cmd"

func main() {
	cmd.Execute()
}
