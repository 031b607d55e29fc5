package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	JWTSecret         string
	MongoURI          string
	DBName            string
	SkipAuth          bool
	Environment       string
	CheckinCollection string // Collection populated by the backend splice checkin tool
	FilterCollection  string
	GPGPublicKeyPath  string // Recipient public key used to encrypt export bundles
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:            getEnv("DB_NAME", "splice-reports"),
		SkipAuth:          getEnv("SKIP_AUTH", "false") == "true",
		Environment:       getEnv("ENVIRONMENT", "development"),
		CheckinCollection: getEnv("CHECKIN_COLLECTION", "marketing_report_data"),
		FilterCollection:  getEnv("FILTER_COLLECTION", "report_filters"),
		GPGPublicKeyPath:  getEnv("GPG_PUBLIC_KEY_PATH", "/etc/splice-reports/report-key.pub"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
