// Command cscheme is the command-line front-end for the interpreter
// (§6.1).
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/cscheme/cmd/cscheme/cmd"
)

func main() {
	root := cmd.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
