package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	OpenAI    OpenAIConfig
	Retrieval RetrievalConfig
	Memory    MemoryConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	RedisURL           string
	QueryEventTopic    string
}

type DatabaseConfig struct {
	Connection string
}

type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	MaxRetries     int
	TimeoutSeconds int
}

// RetrievalConfig bounds how much material a single query may pull
// into the model context.
type RetrievalConfig struct {
	MaxContextTokens int
	SemanticTopK     int
	ChunksPerPerson  int
}

// MemoryConfig controls the conversation working set. SessionStore
// selects the backing store: "cache" keeps sessions in-process,
// "redis" shares them across instances.
type MemoryConfig struct {
	SessionStore          string
	SessionTTLMinutes     int
	MaxConversationTokens int
	MemoryMode            string // "short", "medium", "long" or "adaptive"
	FocusMode             string // "narrow", "adaptive" or "broad"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			QueryEventTopic:    getEnv("QUERY_PROCESSED_TOPIC_NAME", "QUERY_PROCESSED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			BaseURL:        getEnv("OPENAI_BASE_URL", ""),
			ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			MaxRetries:     getEnvAsInt("OPENAI_MAX_RETRIES", 3),
			TimeoutSeconds: getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 30),
		},
		Retrieval: RetrievalConfig{
			MaxContextTokens: getEnvAsInt("MAX_CONTEXT_TOKENS", 6000),
			SemanticTopK:     getEnvAsInt("SEMANTIC_TOP_K", 10),
			ChunksPerPerson:  getEnvAsInt("CHUNKS_PER_PERSON", 3),
		},
		Memory: MemoryConfig{
			SessionStore:          getEnv("SESSION_STORE", "cache"),
			SessionTTLMinutes:     getEnvAsInt("SESSION_TTL_MINUTES", 60),
			MaxConversationTokens: getEnvAsInt("MAX_CONVERSATION_TOKENS", 2000),
			MemoryMode:            getEnv("MEMORY_MODE", "adaptive"),
			FocusMode:             getEnv("FOCUS_MODE", "adaptive"),
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
