package main

import (
	"github.com/joho/godotenv"

	"github.com/radiantjxn/groups-catalog/internal/cli"
)

func main() {
	// A .env file is optional; real environment variables still apply.
	_ = godotenv.Load()

	cli.Execute()
}
