package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	MongoURI  string
	DBName    string
	Port      string
	JWTSecret string

	SendGridAPIKey   string
	EmailFromName    string
	EmailFromAddress string
	AdminEmails      []string

	AWSRegion           string
	AWSBucketName       string
	MirrorProductImages bool

	LogLevel string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/")
	DBName = getEnv("DB_NAME", "storefront")
	Port = getEnv("PORT", "8080")
	JWTSecret = os.Getenv("JWT_SECRET")

	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	EmailFromName = getEnv("EMAIL_FROM_NAME", "Storefront")
	EmailFromAddress = getEnv("EMAIL_FROM_ADDRESS", "no-reply@storefront.local")
	AdminEmails = splitList(os.Getenv("ADMIN_EMAILS"))

	AWSRegion = getEnv("AWS_REGION", "us-east-1")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
	MirrorProductImages = os.Getenv("MIRROR_PRODUCT_IMAGES") == "true"

	LogLevel = getEnv("LOG_LEVEL", "info")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
