package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	AiRateLimit        int    // requests per minute per IP on /api/ai
	TimeZone           string // bucket for yearly statistics
}

type DatabaseConfig struct {
	Connection   string
	Verbose      bool
	MaxIdleConns int
	MaxOpenConns int
}

type APIKeys struct {
	Tmdb           string
	TmdbBearer     string
	GoogleBooks    string
	IndexTopicName string
}

type AIConfig struct {
	SemanticSearchURL string

	// Primary narrative provider (Groq, OpenAI compatible)
	GroqAPIKey      string
	GroqBaseURL     string
	GroqModel       string
	GroqTemperature float64
	GroqMaxTokens   int

	// Secondary provider; also answers the "ask" flow
	LocalAiProvider    string // "openai" or "ollama"
	LocalAiBaseURL     string
	LocalAiModel       string
	LocalAiTemperature float64
	LocalAiMaxTokens   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			AiRateLimit:        getEnvAsInt("AI_RATE_LIMIT_PER_MINUTE", 30),
			TimeZone:           getEnv("APP_TIMEZONE", "Europe/Istanbul"),
		},
		Database: DatabaseConfig{
			Connection:   getEnv("DB_CONNECTION_STRING", ""),
			Verbose:      getEnv("DB_LOG_VERBOSE", "false") == "true",
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 50),
		},
		Keys: APIKeys{
			Tmdb:           getEnv("TMDB_API_KEY", ""),
			TmdbBearer:     getEnv("TMDB_BEARER_TOKEN", ""),
			GoogleBooks:    getEnv("GOOGLE_BOOKS_API_KEY", ""),
			IndexTopicName: getEnv("SEMANTIC_INDEX_TOPIC_NAME", "SEMANTIC_INDEX_CONTENT"),
		},
		Ai: AIConfig{
			SemanticSearchURL: getEnv("SEMANTIC_SEARCH_URL", "https://ozdemirceng-saga-semantic.hf.space"),

			GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			GroqModel:       getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			GroqTemperature: getEnvAsFloat("GROQ_TEMPERATURE", 0.7),
			GroqMaxTokens:   getEnvAsInt("GROQ_MAX_TOKENS", 500),

			LocalAiProvider:    getEnv("LOCAL_AI_PROVIDER", "openai"),
			LocalAiBaseURL:     getEnv("LOCAL_AI_BASE_URL", ""),
			LocalAiModel:       getEnv("LOCAL_AI_MODEL", "phi-3-mini"),
			LocalAiTemperature: getEnvAsFloat("LOCAL_AI_TEMPERATURE", 0.2),
			LocalAiMaxTokens:   getEnvAsInt("LOCAL_AI_MAX_TOKENS", 400),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
