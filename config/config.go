package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP server configuration
	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5250"`

		// Comma-separated list of allowed CORS origins; "*" allows all
		AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/homestead.db"`
	}

	Auth struct {
		// Secret used to sign session tokens
		JWTSecret string `env:"JWT_SECRET" envDefault:"homestead-dev-secret"`

		// Token lifetime in hours
		TokenTTLHours int `env:"TOKEN_TTL_HOURS" envDefault:"24"`
	}

	// Seed credentials for the bootstrap admin account
	Admin struct {
		AdminID  string `env:"ADMIN_ID" envDefault:"admin"`
		Password string `env:"ADMIN_PASSWORD" envDefault:""`
		Name     string `env:"ADMIN_NAME" envDefault:"Administrator"`
	}

	Telegram struct {
		Enabled  bool   `env:"TELEGRAM_ENABLED" envDefault:"false"`
		BotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
		ChatID   int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`
	}

	// Buffer size for the notification dispatch queue
	Notifications struct {
		QueueSize int `env:"NOTIFY_QUEUE_SIZE" envDefault:"64"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
