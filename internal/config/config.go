package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	fallbackSecret = "DEFAULT_FALLBACK_KEY_CHANGE_ME_IMMEDIATELY_IN_PROD"

	defaultRunAddress = ":8080"
	defaultBaseURL    = "http://localhost:8080"
	defaultMigrations = "migrations"
	defaultMailPort   = 587
)

type Config struct {
	Env    string
	Secret string
	Server server
	DB     db
	Mail   Mail
	Logger logger
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
	BaseURL    string `env:"BASE_URL"`
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

// Mail holds the outbound SMTP transport settings. The transport is optional:
// when Host or From is empty the server runs without it and password reset
// emails degrade to a user-visible warning.
type Mail struct {
	Host     string `env:"MAIL_HOST"`
	Port     int    `env:"MAIL_PORT"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`
	From     string `env:"MAIL_FROM"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func (m Mail) Configured() bool {
	return m.Host != "" && m.From != ""
}

// MustLoad reads configuration once at startup from the environment,
// optionally seeded by a .env file.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("run_address", defaultRunAddress)
	viper.SetDefault("base_url", defaultBaseURL)
	viper.SetDefault("migrations_path", defaultMigrations)
	viper.SetDefault("mail_port", defaultMailPort)

	secret := viper.GetString("secret_key")
	if secret == "" {
		secret = fallbackSecret
	}

	config := Config{
		Env:    viper.GetString("app_env"),
		Secret: secret,
		Server: server{
			RunAddress: viper.GetString("run_address"),
			BaseURL:    viper.GetString("base_url"),
		},
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Mail: Mail{
			Host:     viper.GetString("mail_host"),
			Port:     viper.GetInt("mail_port"),
			Username: viper.GetString("mail_username"),
			Password: viper.GetString("mail_password"),
			From:     viper.GetString("mail_from"),
		},
		Logger: logger{LogLevel: viper.GetString("log_level")},
	}

	return &config
}
