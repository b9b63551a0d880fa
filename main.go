package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kubev2v/smtp-gateway-agent/cmd"
	"github.com/kubev2v/smtp-gateway-agent/internal/config"
)

func main() {
	// optional .env next to the binary
	_ = godotenv.Load()

	cfg := config.NewConfigurationWithOptionsAndDefaults()

	if err := cmd.NewRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
