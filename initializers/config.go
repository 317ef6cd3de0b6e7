package initializers

import (
	"fmt"
	"os"
	"strings"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port           string
	DatabaseURL    string
	MigrationsPath string

	ElasticsearchURL   string
	ElasticsearchIndex string

	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string

	LLMAPIURL string
	LLMAPIKey string
	LLMModel  string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	LogLevel  string
	LogFormat string
	GinMode   string
}

const (
	defaultLLMAPIURL = "https://api.groq.com/openai/v1/chat/completions"
	defaultLLMModel  = "llama-3.1-8b-instant"
)

// LoadConfig reads Config from the environment. DIRECT_URL is required.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DIRECT_URL"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "file://db/migrations"),

		ElasticsearchURL:   os.Getenv("ELASTICSEARCH_URL"),
		ElasticsearchIndex: getenv("ELASTICSEARCH_INDEX", "notes"),

		S3Region:    os.Getenv("S3_REGION"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),

		LLMAPIURL: getenv("LLM_API_URL", defaultLLMAPIURL),
		LLMAPIKey: os.Getenv("LLM_API_KEY"),
		LLMModel:  getenv("LLM_MODEL", defaultLLMModel),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "console")),
		GinMode:   os.Getenv("GIN_MODE"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("env variable DIRECT_URL is empty")
	}
	return cfg, nil
}

// SearchEnabled reports whether an Elasticsearch index is configured.
func (c *Config) SearchEnabled() bool { return c.ElasticsearchURL != "" }

// ArchiveEnabled reports whether imported files are archived to S3.
func (c *Config) ArchiveEnabled() bool { return c.S3Bucket != "" }

// LLMEnabled reports whether LLM extraction is available: an API key is set,
// or LLM_API_URL points at a keyless endpoint such as a local Ollama.
func (c *Config) LLMEnabled() bool {
	return c.LLMAPIKey != "" || c.LLMAPIURL != defaultLLMAPIURL
}

// MailEnabled reports whether assignment emails can be sent.
func (c *Config) MailEnabled() bool { return c.SMTPHost != "" }

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
