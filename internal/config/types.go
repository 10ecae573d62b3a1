package config

type Config struct {
	OpenAIKey      string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	Environment    string
	AllowedOrigins []string
}
