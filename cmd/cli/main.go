// seglog - Streaming Log Segmentation Tool
//
// seglog reads arbitrarily large log files in bounded chunks, reconstructs
// logical entries that span multiple physical lines (stack traces,
// pretty-printed JSON), and classifies each entry's severity and timestamp.
package main

import (
	"os"

	"github.com/theDavidOlasupo/seglog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
