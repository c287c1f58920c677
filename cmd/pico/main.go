// Command pico inspects pico projects and markup.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/pico/cmd/pico/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
