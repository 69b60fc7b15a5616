package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NatsURL string

	JWTSecret  string
	OperatorID string

	S3Endpoint   string
	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3DisableTLS bool

	SendGridAPIKey string
	SenderEmail    string
	SenderName     string
}

func Load() *Config {
	return &Config{
		HTTPAddr: GetEnvAsString("HTTP_ADDR", ":8080"),

		MongoURI: GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  GetEnvAsString("MONGO_DB", "course-service"),

		RedisAddr:     GetEnvAsString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),

		NatsURL: GetEnvAsString("NATS_URL", "nats://localhost:4222"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		OperatorID: os.Getenv("OPERATOR_ID"),

		S3Endpoint:   os.Getenv("S3_ENDPOINT"),
		S3Region:     GetEnvAsString("S3_REGION", "us-east-1"),
		S3Bucket:     GetEnvAsString("S3_BUCKET", "slip-images"),
		S3AccessKey:  os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:  os.Getenv("S3_SECRET_KEY"),
		S3DisableTLS: GetEnvAsBool("S3_DISABLE_TLS", false),

		SendGridAPIKey: os.Getenv("EMAIL_API_KEY"),
		SenderEmail:    os.Getenv("EMAIL_SENDER"),
		SenderName:     GetEnvAsString("EMAIL_SENDER_NAME", "Course Marketplace"),
	}
}

// GetEnvAsString gets environment variable as string with default value
func GetEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets environment variable as int with default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsBool gets environment variable as bool with default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration gets environment variable as duration with default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
