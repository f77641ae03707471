package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/invoza/invoza/internal/cli"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
