package bootstrap

import (
	"log"

	"github.com/joho/godotenv"
)

// Loadenv populates the process environment from .env when present. Runs
// before the logger exists, so failures go to the standard logger.
func Loadenv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}
