package main

import (
	"github.com/joho/godotenv"

	"github.com/pfrederiksen/toto-draws/internal/cli"
)

func main() {
	// Optional .env for TOTO_DATA_DIR and friends; absence is fine.
	godotenv.Load()

	cli.Execute()
}
