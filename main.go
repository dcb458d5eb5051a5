package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/alanpramil7/ytstudio/cmd"
	"github.com/alanpramil7/ytstudio/internal/format"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, format.ErrorStyle.Render(cmd.ErrorMessage(err)))
		os.Exit(1)
	}
}
