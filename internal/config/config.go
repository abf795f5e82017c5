package config

import (
	"os"
	"strconv"
)

type Config struct {
	App       AppConfig
	Gemini    GeminiConfig
	Interview InterviewConfig
	Store     StoreConfig
	Redis     RedisConfig
	Database  DatabaseConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
}

type InterviewConfig struct {
	QuestionsPerSession int
}

type StoreConfig struct {
	Backend          string
	QuestionBankPath string
	SessionsPath     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

const (
	StoreBackendFile     = "file"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

func Load() *Config {
	return &Config{
		App: AppConfig{
			Port: getEnv("APP_PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
			TimeoutSeconds: getEnvAsInt("GEMINI_TIMEOUT_SECONDS", 60),
		},
		Interview: InterviewConfig{
			QuestionsPerSession: getEnvAsInt("QUESTIONS_PER_SESSION", 10),
		},
		Store: StoreConfig{
			Backend:          getEnv("STORE_BACKEND", StoreBackendFile),
			QuestionBankPath: getEnv("QUESTION_BANK_PATH", "data/questions.json"),
			SessionsPath:     getEnv("SESSIONS_PATH", "data/sessions.json"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "interview_coach"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
