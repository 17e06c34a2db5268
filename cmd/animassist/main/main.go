package main

import (
	"fmt"
	"os"

	"github.com/lmcintyre/AnimAssist/cmd/animassist"
	"github.com/lmcintyre/AnimAssist/pkg/ui"
)

func main() {
	rootCmd := animassist.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err, ui.DetectFormat(os.Stderr)))
		os.Exit(1)
	}
}
