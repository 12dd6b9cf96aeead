package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/talentscout/screener/cmd"
)

func main() {
	// Optional: local development convenience only.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
