package main

import "github.com/erwint/claude-usage-monitor/internal/cmd"

// Version can be set during build with -ldflags
var version = "dev"

func main() {
	cmd.Execute(version)
}
