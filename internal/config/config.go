package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	Database                  DatabaseConfig
	OpenRouter                OpenRouterConfig
	Upload                    UploadConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// OpenRouterConfig holds the upstream AI model service configuration
type OpenRouterConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	FallbackModels []string
	TimeoutSeconds int
}

// UploadConfig holds file upload configuration
type UploadConfig struct {
	MaxFileSize int64
	Directory   string
}

// defaultFallbackModels is the ordered list of alternate model identifiers
// tried in sequence when the primary model fails or returns an unparseable
// response. Product configuration, overridable via OPENROUTER_FALLBACK_MODELS.
const defaultFallbackModels = "microsoft/wizardlm-2-8x22b:free," +
	"meta-llama/llama-3.1-8b-instruct:free," +
	"google/gemma-2-9b-it:free," +
	"huggingfaceh4/zephyr-7b-beta:free," +
	"openchat/openchat-7b:free"

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "ai_doctor"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	analysisTimeout, err := strconv.Atoi(getEnv("ANALYSIS_TIMEOUT_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYSIS_TIMEOUT_SECONDS: %w", err)
	}

	maxFileSize, err := strconv.ParseInt(getEnv("MAX_FILE_SIZE", "10485760"), 10, 64) // 10 MiB
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_FILE_SIZE: %w", err)
	}

	openRouterConfig := OpenRouterConfig{
		APIKey:         getEnv("OPENROUTER_API_KEY", ""),
		BaseURL:        getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:          getEnv("OPENROUTER_MODEL", "openai/gpt-oss-120b:free"),
		FallbackModels: splitModels(getEnv("OPENROUTER_FALLBACK_MODELS", defaultFallbackModels)),
		TimeoutSeconds: analysisTimeout,
	}

	uploadConfig := UploadConfig{
		MaxFileSize: maxFileSize,
		Directory:   getEnv("UPLOAD_DIRECTORY", "./uploaded_files"),
	}

	// Return complete configuration
	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:3000"),
		Environment:               getEnv("NODE_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		Database:                  dbConfig,
		OpenRouter:                openRouterConfig,
		Upload:                    uploadConfig,
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
	}, nil
}

func splitModels(s string) []string {
	var models []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	return models
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
