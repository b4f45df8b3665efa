package utils

import (
	"os"
	"strings"
)

// GetEnv returns the value of env or a service default when it is unset
// or blank.
func GetEnv(env string) string {
	value, ok := os.LookupEnv(env)
	if ok && strings.TrimSpace(value) != "" {
		return value
	}

	switch env {
	case "PORT":
		return "8080"
	case "DATA_PATH":
		return "./data"
	case "REFRESH_CRON":
		return "@every 20m"
	case "REFRESH_ON_BOOT":
		return "true"
	case "CHANNEL_SOURCE":
		return "file"
	case "VAVOO_GROUP":
		return "Italy"
	case "VAVOO_ENDPOINT":
		return "https://vavoo.to/vto-cluster/mediahubmx-catalog.json"
	default:
		return ""
	}
}
