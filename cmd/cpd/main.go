package main

import (
	"flag"
	"fmt"
	"os"

	"cpd/internal/di"
	"cpd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "c", "config.yaml", "path to the config file")
	flag.BoolVar(&flags.DebugMode, "d", false, "debug mode: echo logs to the console")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "cpd: %s\n", err)
		os.Exit(1)
	}
}
