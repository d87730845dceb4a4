package config

import (
	"os"
	"path/filepath"
)

const (
	appNameVar         = "APP_NAME"
	logLevelVar        = "LOG_LEVEL"
	credentialsFileVar = "ERP_CREDENTIALS_FILE"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "ERP Client")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

// GetCredentialsFile returns the path of the local credential database.
// Defaults to a dotfile in the user's home directory.
func (EnvVars) GetCredentialsFile() string {
	if path := os.Getenv(credentialsFileVar); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".erpcli-credentials.db"
	}
	return filepath.Join(home, ".erpcli-credentials.db")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
