package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    int    `mapstructure:"PORT"`
	MongoURI string `mapstructure:"MONGO_URI"`
	MongoDB  string `mapstructure:"MONGO_DB"`

	RedisAddress string `mapstructure:"REDIS_ADDRESS"`
	NATSURL      string `mapstructure:"NATS_URL"`

	MinIOEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket    string `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	RazorpayKeySecret      string `mapstructure:"RAZORPAY_KEY_SECRET"`
	PaymentAllowUnverified bool   `mapstructure:"PAYMENT_ALLOW_UNVERIFIED"`

	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	ModerationModel   string        `mapstructure:"MODERATION_MODEL"`
	ModerationTimeout time.Duration `mapstructure:"MODERATION_TIMEOUT"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPEmail    string `mapstructure:"SMTP_EMAIL"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
}

func Load() (*Config, error) {
	// A local .env is optional; real deployments set the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	viper.SetDefault("PORT", 5000)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "retrand")
	viper.SetDefault("REDIS_ADDRESS", "localhost:6379")
	viper.SetDefault("NATS_URL", "nats://localhost:4222")
	viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	viper.SetDefault("MINIO_BUCKET", "listing-photos")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("RAZORPAY_KEY_SECRET", "")
	viper.SetDefault("PAYMENT_ALLOW_UNVERIFIED", false)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("MODERATION_MODEL", "gemini-1.5-flash")
	viper.SetDefault("MODERATION_TIMEOUT", time.Minute)
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_EMAIL", "")
	viper.SetDefault("SMTP_PASSWORD", "")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
