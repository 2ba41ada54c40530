// The main package for the nhldata executable.
package main

import (
	"github.com/JakeFAU/nhl-stats-crawler/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
