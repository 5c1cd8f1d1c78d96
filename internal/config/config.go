package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Oracle modes selectable at composition time.
const (
	OracleString    = "string"
	OracleEmbedding = "embedding"
)

// Config holds all configuration for the application.
type Config struct {
	WorkspaceRoots      []string
	IgnorePatterns      []string
	DBPath              string
	FavoritesDBPath     string
	PersistWindow       time.Duration
	SimilarityThreshold float64
	OracleMode          string
	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingAPIKey     string
	QdrantURL           string
	QdrantCollection    string
	QdrantVectorSize    int
	APIPort             string
	LogLevel            slog.Level
	LogFormat           string
}

// Load reads configuration from environment variables and returns a Config
// struct. It applies defaults for optional fields and validates required
// fields. If a .env file exists in the current directory or a parent, it is
// loaded automatically; variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a .env next to go.mod
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		WorkspaceRoots:     splitList(getEnv("WORKSPACE_ROOTS", "")),
		IgnorePatterns:     splitList(getEnv("IGNORE_PATTERNS", "vendor/,dist/,build/,*.min.js")),
		DBPath:             getEnv("DB_PATH", "./data/groupscope.db"),
		FavoritesDBPath:    getEnv("FAVORITES_DB_PATH", defaultFavoritesPath()),
		OracleMode:         getEnv("ORACLE_MODE", OracleString),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", "dummy-key"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "group-names"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	if len(cfg.WorkspaceRoots) == 0 {
		return nil, fmt.Errorf("WORKSPACE_ROOTS is required")
	}

	windowSeconds, err := strconv.Atoi(getEnv("PERSIST_WINDOW_SECONDS", "30"))
	if err != nil || windowSeconds <= 0 {
		return nil, fmt.Errorf("PERSIST_WINDOW_SECONDS must be a positive integer")
	}
	cfg.PersistWindow = time.Duration(windowSeconds) * time.Second

	threshold, err := strconv.ParseFloat(getEnv("SIMILARITY_THRESHOLD", "0.75"), 64)
	if err != nil || threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("SIMILARITY_THRESHOLD must be in (0, 1]")
	}
	cfg.SimilarityThreshold = threshold

	switch cfg.OracleMode {
	case OracleString:
	case OracleEmbedding:
		// The vector size must match the embedding model's output; the
		// Qdrant collection must be recreated if it changes.
		vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
		if vectorSizeStr == "" {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required when ORACLE_MODE=embedding")
		}
		vectorSize, err := strconv.Atoi(vectorSizeStr)
		if err != nil || vectorSize <= 0 {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a positive integer")
		}
		cfg.QdrantVectorSize = vectorSize
	default:
		return nil, fmt.Errorf("ORACLE_MODE must be %q or %q", OracleString, OracleEmbedding)
	}

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	// Create data directories for both databases
	for _, dbPath := range []string{cfg.DBPath, cfg.FavoritesDBPath} {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// defaultFavoritesPath keeps favorites under the user's home so they stay
// local instead of round-tripping through the shared snapshot.
func defaultFavoritesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data/favorites.db"
	}
	return filepath.Join(home, ".groupscope", "favorites.db")
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma-separated value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
