package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at release build time.
var version = "dev"

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the tailor version",
	Run: func(_ *cobra.Command, _ []string) {
		v := version
		if v == "dev" {
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
				v = info.Main.Version
			}
		}
		fmt.Printf("tailor %s\n", v)
	},
}

func init() {
	rootCmd.AddCommand(versionCommand)
}
