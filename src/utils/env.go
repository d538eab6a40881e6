package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"
const PROD_ENV_FILENAME = ".env.production"

// InitEnvironmentVariables loads .env.<goEnv> from <projectsDir>/options-cleaner/src.
func InitEnvironmentVariables(projectsDir, goEnv string) error {
	// production injects variables directly
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	if projectsDir == "" {
		return fmt.Errorf("PROJECTS_DIR environment variable not set")
	}

	envDir := filepath.Join(projectsDir, "options-cleaner", "src")

	// Determine which .env file to load
	envFile := filepath.Join(envDir, DEV_ENV_FILENAME) // default to development environment
	if goEnv == "production" {
		envFile = filepath.Join(envDir, PROD_ENV_FILENAME)
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		log.Debugf("no env file at %s", envFile)
		return nil
	}

	// Load the specified .env file
	err := godotenv.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load %s file: %v", envFile, err)
	}

	return nil
}

func GetEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("missing %s environment variable", key)
	}

	return value, nil
}

// SetLogLevel reads LOG_LEVEL, defaulting to info.
func SetLogLevel() {
	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(level)
	}
}
