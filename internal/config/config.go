package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// ServerURL is the websocket endpoint of the game server.
	ServerURL string
	// IdentityPath is where the assigned player id is persisted.
	IdentityPath string
	LogLevel     string
	// ReconnectAttempts caps consecutive failed connects; zero retries
	// forever.
	ReconnectAttempts int
}

// Load reads an optional .env file, then the environment, falling back to
// defaults that point at a local server.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServerURL:         getEnv("CODENAMES_SERVER_URL", "ws://localhost:8765/"),
		IdentityPath:      getEnv("CODENAMES_IDENTITY_FILE", defaultIdentityPath()),
		LogLevel:          getEnv("CODENAMES_LOG_LEVEL", "info"),
		ReconnectAttempts: getEnvInt("CODENAMES_RECONNECT_ATTEMPTS", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func defaultIdentityPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "player.json"
	}
	return filepath.Join(dir, "codenames", "player.json")
}
