package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/lmcintyre/AnimAssist/cmd/animassist"
	"github.com/lmcintyre/AnimAssist/internal/version"
)

func main() {
	rootCmd := animassist.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "ANIMASSIST",
		Section: "1",
		Source:  "animassist " + version.Version,
		Manual:  "animassist manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
