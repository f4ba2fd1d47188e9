package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TLSCertFile    string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string   `mapstructure:"TLS_KEY_FILE"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	StoreDriver    string        `mapstructure:"STORE_DRIVER"`
	DBHost         string        `mapstructure:"POSTGRES_HOST"`
	DBPort         string        `mapstructure:"POSTGRES_PORT"`
	DBUser         string        `mapstructure:"POSTGRES_USER"`
	DBPassword     string        `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string        `mapstructure:"POSTGRES_DB"`
	DBMaxOpenConns int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxIdleTime  time.Duration `mapstructure:"DB_MAX_IDLE_TIME"`

	FirestoreProjectID       string `mapstructure:"FIRESTORE_PROJECT_ID"`
	FirestoreCredentialsFile string `mapstructure:"FIRESTORE_CREDENTIALS_FILE"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	MailHost        string        `mapstructure:"MAIL_HOST"`
	MailPort        int           `mapstructure:"MAIL_PORT"`
	MailUser        string        `mapstructure:"MAIL_USER"`
	MailPassword    string        `mapstructure:"MAIL_PASSWORD"`
	MailSender      string        `mapstructure:"MAIL_SENDER"`
	MailTimeout     time.Duration `mapstructure:"MAIL_TIMEOUT"`
	NotifyRecipient string        `mapstructure:"NOTIFY_RECIPIENT"`

	CacheTTL         time.Duration `mapstructure:"CACHE_TTL"`
	RateLimitEnabled bool          `mapstructure:"LIMITER_ENABLED"`
	RateLimitRPS     float64       `mapstructure:"LIMITER_RPS"`
	RateLimitBurst   int           `mapstructure:"LIMITER_BURST"`

	BlogAuthor string `mapstructure:"BLOG_AUTHOR"`
}

var configDefaults = map[string]any{
	"PORT":                       ":5000",
	"ENVIRONMENT":                "development",
	"VERSION":                    "1.0.0",
	"TLS_CERT_FILE":              "",
	"TLS_KEY_FILE":               "",
	"TRUSTED_ORIGINS":            "http://localhost:5173",
	"STORE_DRIVER":               "memory",
	"POSTGRES_HOST":              "",
	"POSTGRES_PORT":              "5432",
	"POSTGRES_USER":              "",
	"POSTGRES_PASSWORD":          "",
	"POSTGRES_DB":                "",
	"DB_MAX_OPEN_CONNS":          10,
	"DB_MAX_IDLE_CONNS":          5,
	"DB_MAX_IDLE_TIME":           "15m",
	"FIRESTORE_PROJECT_ID":       "",
	"FIRESTORE_CREDENTIALS_FILE": "",
	"RABBITMQ_HOST":              "",
	"RABBITMQ_PORT":              "5672",
	"RABBITMQ_USER":              "",
	"RABBITMQ_PASSWORD":          "",
	"MAIL_HOST":                  "",
	"MAIL_PORT":                  587,
	"MAIL_USER":                  "",
	"MAIL_PASSWORD":              "",
	"MAIL_SENDER":                "",
	"MAIL_TIMEOUT":               "5s",
	"NOTIFY_RECIPIENT":           "",
	"CACHE_TTL":                  "5m",
	"LIMITER_ENABLED":            true,
	"LIMITER_RPS":                20,
	"LIMITER_BURST":              40,
	"BLOG_AUTHOR":                "Admin",
}

// loadConfig reads the dotenv file at path, if it exists, and lets environment variables
// override any key.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
