package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"3000"`
	DatabaseDriver string        `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseDSN    string        `env:"DATABASE_DSN,required"`
	JWTSecret      string        `env:"JWT_SECRET,required"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	BcryptCost     int           `env:"BCRYPT_COST" envDefault:"10"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Default allowed origins for local frontend development.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

func Load() (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Origins returns the CORS allow-list: the development defaults plus
// anything configured through ALLOWED_ORIGINS.
func (c Config) Origins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	for _, origin := range c.AllowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
