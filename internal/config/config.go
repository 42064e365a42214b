package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	// SQLitePath is used when DATABASE_URL is unset (local development)
	SQLitePath string `env:"SQLITE_PATH" envDefault:"stablecart.db"`
	SeedData   bool   `env:"SEED_DATA" envDefault:"true"`

	Auth Auth `envPrefix:"AUTH_"`
}

type Auth struct {
	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"72"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
