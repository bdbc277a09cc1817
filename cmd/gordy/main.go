// Command gordy runs the grammars built with the gordy toolkit over files and
// prints what they parse.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
