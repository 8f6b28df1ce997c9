package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; the environment always wins.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
