package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting, one field per environment variable.
// Defaults suit local development; production overrides via env.
type Config struct {
	Env  string
	Port string

	DSN string

	SecretKey  string
	AdminEmail string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailSender   string

	KafkaBrokers []string
	KafkaTopic   string

	// BaseURL prefixes the links embedded in confirmation/reset mails.
	BaseURL string

	PostsPerPage     int
	FollowersPerPage int
	CommentsPerPage  int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:  getenv("APP_ENV", "development"),
		Port: getenv("APP_PORT", "8080"),

		DSN: getenv("DB_DSN", "user:password@tcp(127.0.0.1:3306)/heyblog?charset=utf8mb4&parseTime=True"),

		SecretKey:  getenv("SECRET_KEY", "hard to guess string"),
		AdminEmail: getenv("ADMIN_EMAIL", ""),

		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		SMTPHost:     getenv("MAIL_SERVER", "smtp.qq.com"),
		SMTPPort:     getint("MAIL_PORT", 587),
		SMTPUsername: getenv("MAIL_USERNAME", ""),
		SMTPPassword: getenv("MAIL_PASSWORD", ""),
		MailSender:   getenv("MAIL_SENDER", "Hey Admin <hey@example.com>"),

		KafkaBrokers: strings.Split(getenv("KAFKA_BROKERS", "127.0.0.1:9092"), ","),
		KafkaTopic:   getenv("KAFKA_TOPIC", "social.follow"),

		BaseURL: getenv("BASE_URL", "http://localhost:8080"),

		PostsPerPage:     getint("POSTS_PER_PAGE", 20),
		FollowersPerPage: getint("FOLLOWERS_PER_PAGE", 10),
		CommentsPerPage:  getint("COMMENTS_PER_PAGE", 30),
	}
}

func (c *Config) Development() bool { return c.Env != "production" }

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
