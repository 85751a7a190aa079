package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageS3  = "s3"
	StorageGCS = "gcs"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	JWTSecret   string
	UploadLimit string
	SamplesDir  string

	Redis RedisConfig
	OTP   OTPConfig

	Validation ValidationConfig
	Insert     InsertConfig
	Storage    StorageConfig
	Twilio     TwilioConfig
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type OTPConfig struct {
	TTLSeconds  int
	MaxAttempts int
	PhoneRegion string
}

type ValidationConfig struct {
	ContactPattern string
	PincodeLength  int
}

type InsertConfig struct {
	BcryptCost   int
	HashWorkers  int
	CodeAttempts int
}

type StorageConfig struct {
	Provider       string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	AWSAccessKey   string
	AWSSecretKey   string
	GCSBucket      string
	GCSCredentials string
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Enabled reports whether real SMS delivery is configured.
func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		UploadLimit: getEnv("UPLOAD_LIMIT", "10M"),
		SamplesDir:  getEnv("SAMPLES_DIR", "./samples"),
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       parseIntEnv("REDIS_DB", 0),
		},
		OTP: OTPConfig{
			TTLSeconds:  parseIntEnv("OTP_TTL_SECONDS", 300),
			MaxAttempts: parseIntEnv("OTP_MAX_ATTEMPTS", 5),
			PhoneRegion: getEnv("PHONE_REGION", "IN"),
		},
		Validation: ValidationConfig{
			ContactPattern: getEnv("CONTACT_PATTERN", `^[6-9]\d{9}$`),
			PincodeLength:  parseIntEnv("PINCODE_LENGTH", 6),
		},
		Insert: InsertConfig{
			BcryptCost:   parseIntEnv("BCRYPT_COST", 10),
			HashWorkers:  parseIntEnv("HASH_WORKERS", 4),
			CodeAttempts: parseIntEnv("CODE_ATTEMPTS", 5),
		},
		Storage: StorageConfig{
			Provider:       strings.ToLower(getEnv("STORAGE_PROVIDER", StorageS3)),
			S3Bucket:       os.Getenv("S3_BUCKET"),
			S3Region:       getEnv("AWS_REGION", "ap-south-1"),
			S3Endpoint:     os.Getenv("AWS_S3_ENDPOINT"),
			AWSAccessKey:   os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
			GCSBucket:      os.Getenv("GCS_BUCKET"),
			GCSCredentials: os.Getenv("GCS_CREDENTIALS_JSON"),
		},
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		},
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	switch cfg.Storage.Provider {
	case StorageS3:
		if cfg.Storage.S3Bucket == "" {
			return Config{}, errors.New("S3_BUCKET is required when STORAGE_PROVIDER=s3")
		}
	case StorageGCS:
		if cfg.Storage.GCSBucket == "" {
			return Config{}, errors.New("GCS_BUCKET is required when STORAGE_PROVIDER=gcs")
		}
	default:
		return Config{}, errors.New("STORAGE_PROVIDER must be s3 or gcs")
	}

	return cfg, nil
}

func parseIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
