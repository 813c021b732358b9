package main

import (
	"log/slog"
	"os"

	"flight_report/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		slog.Error("Run failed", "error", err)
		os.Exit(1)
	}
}
