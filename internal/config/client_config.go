package config

import (
	"time"
)

type ClientConfig interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetRefreshBuffer() time.Duration
}

type Client struct{}

var _ ClientConfig = Client{}

// GetBaseURL returns the base URL of the ERP backend API.
func (Client) GetBaseURL() string {
	return GetEnv("ERP_BASE_URL", "http://localhost:4000/api")
}

func (Client) GetRequestTimeout() time.Duration {
	return durationEnv("ERP_TIMEOUT", 30*time.Second)
}

// GetRefreshBuffer returns how far before JWT expiry the client refreshes
// proactively. Zero disables proactive refresh.
func (Client) GetRefreshBuffer() time.Duration {
	return durationEnv("ERP_REFRESH_BUFFER", 0)
}

func durationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
