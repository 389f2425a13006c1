package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv reads an optional .env file into the process environment.
// Missing files are fine; deployment environments set real env vars.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		GetLogger().Debug("no .env file found; using process environment")
	}
}
