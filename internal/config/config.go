package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	JWTSecret          string
	MongoURI           string
	DBName             string
	SkipAuth           bool
	Environment        string
	AppId              string
	AuditRetentionDays int // Audit entries older than this are purged by the retention job

	// Record store selection: "mock" serves the built-in demo rows,
	// "postgresql" / "mysql" read source tables from an external DB.
	RecordStore      string
	RecordDBHost     string
	RecordDBPort     int
	RecordDBName     string
	RecordDBUser     string
	RecordDBPassword string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:             getEnv("DB_NAME", "go-compliance"),
		SkipAuth:           getEnv("SKIP_AUTH", "false") == "true",
		Environment:        getEnv("ENVIRONMENT", "development"),
		AppId:              getEnv("APP_ID", "go-compliance"),
		AuditRetentionDays: getEnvInt("AUDIT_RETENTION_DAYS", 90),
		RecordStore:        getEnv("RECORD_STORE", "mock"),
		RecordDBHost:       getEnv("RECORD_DB_HOST", ""),
		RecordDBPort:       getEnvInt("RECORD_DB_PORT", 0),
		RecordDBName:       getEnv("RECORD_DB_NAME", ""),
		RecordDBUser:       getEnv("RECORD_DB_USER", ""),
		RecordDBPassword:   getEnv("RECORD_DB_PASSWORD", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
