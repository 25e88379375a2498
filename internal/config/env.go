package config

import (
	"os"
	"strconv"
	"strings"
)

// LoadEnv seeds the process environment from the nearest .env file, checking
// the working directory then two parents. Keys already set in the real
// environment win over file entries.
func LoadEnv() error {
	for _, path := range []string{".env", "../.env", "../../.env"} {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			key, value, found := strings.Cut(line, "=")
			if !found {
				continue
			}
			key = strings.TrimSpace(key)
			if os.Getenv(key) == "" {
				os.Setenv(key, strings.TrimSpace(value))
			}
		}
		break
	}
	return nil
}

// GetEnvFloat reads a float environment variable, falling back to the
// default when unset or unparseable
func GetEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
