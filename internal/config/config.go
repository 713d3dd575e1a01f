package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	LogLevel string

	GeminiAPIKey string
	GeminiModel  string

	NotionAPIKey                string
	NotionFAQDatabaseID         string
	NotionServicesDatabaseID    string
	NotionCompanyInfoDatabaseID string

	// DatabaseURL points at the local interaction log; empty disables it.
	DatabaseURL string

	ProxyURL string
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		HTTPPort:                    getEnv("HTTP_PORT", "8080"),
		LogLevel:                    getEnv("LOG_LEVEL", "INFO"),
		GeminiAPIKey:                getEnv("GEMINI_API_KEY", ""),
		GeminiModel:                 getEnv("GEMINI_MODEL", ""),
		NotionAPIKey:                getEnv("NOTION_API_KEY", ""),
		NotionFAQDatabaseID:         getEnv("NOTION_FAQ_DATABASE_ID", ""),
		NotionServicesDatabaseID:    getEnv("NOTION_SERVICES_DATABASE_ID", ""),
		NotionCompanyInfoDatabaseID: getEnv("NOTION_COMPANY_INFO_DATABASE_ID", ""),
		DatabaseURL:                 getEnv("DATABASE_URL", "redcat_chatbot.db"),
		ProxyURL:                    getEnv("PROXY_URL", ""),
	}

	// Both collaborators are optional: the pipeline skips whatever is not
	// configured and falls through to its static responses.
	if !AppConfig.HasNotion() {
		log.Println("Notion credentials not set, knowledge base stage disabled")
	}
	if !AppConfig.HasGemini() {
		log.Println("GEMINI_API_KEY not set, generative stage disabled")
	}
}

// HasNotion reports whether the knowledge-base collaborator is configured.
func (c Config) HasNotion() bool {
	return c.NotionAPIKey != "" && c.NotionFAQDatabaseID != ""
}

// HasGemini reports whether the generative collaborator is configured.
func (c Config) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
