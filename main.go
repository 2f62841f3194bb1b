// The main package for the sitescraper executable.
package main

import (
	"github.com/lmercier/sitescraper/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
