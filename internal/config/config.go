package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreMemory    = "memory"
	StoreMongo     = "mongo"
	StoreFirestore = "firestore"

	NotifierLog   = "log"
	NotifierEmail = "email"
	NotifierRedis = "redis"
)

type Config struct {
	Port        string   `envconfig:"PORT" default:"8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`
	MongoURI    string `envconfig:"MONGODB_URI"`
	DBName      string `envconfig:"DB_NAME" default:"feedback"`

	FirestoreProjectID string `envconfig:"FIRESTORE_PROJECT_ID"`
	GoogleCredentials  string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`

	CohereAPIKey  string        `envconfig:"COHERE_API_KEY"`
	CohereModel   string        `envconfig:"COHERE_MODEL" default:"command-r-plus"`
	CohereBaseURL string        `envconfig:"COHERE_BASE_URL" default:"https://api.cohere.com"`
	CohereTimeout time.Duration `envconfig:"COHERE_TIMEOUT" default:"30s"`
	ResortName    string        `envconfig:"RESORT_NAME" default:"Kuriftu Resort"`

	Timezone              string        `envconfig:"TIMEZONE" default:"Local"`
	TrendsRefreshInterval time.Duration `envconfig:"TRENDS_REFRESH_INTERVAL" default:"0"`
	AlertDropThreshold    float64       `envconfig:"ALERT_DROP_THRESHOLD" default:"0.5"`
	LowRatingAlert        int           `envconfig:"LOW_RATING_ALERT" default:"2"`
	Notifier              string        `envconfig:"NOTIFIER" default:"log"`
	ResendAPIKey          string        `envconfig:"RESEND_API_KEY"`
	FromEmail             string        `envconfig:"FROM_EMAIL"`
	AlertEmails           []string      `envconfig:"ALERT_EMAIL"`
	RedisURL              string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	AlertStream           string        `envconfig:"ALERT_STREAM" default:"feedback:alerts"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogFile   string `envconfig:"LOG_FILE"`
}

// Load reads .env when present (ignored in production, where env vars are
// set directly) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongo store")
		}
	case StoreFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required for the firestore store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	c.Notifier = strings.ToLower(strings.TrimSpace(c.Notifier))
	switch c.Notifier {
	case NotifierLog, NotifierRedis:
	case NotifierEmail:
		if c.ResendAPIKey == "" || c.FromEmail == "" || len(c.AlertEmails) == 0 {
			return fmt.Errorf("RESEND_API_KEY, FROM_EMAIL and ALERT_EMAIL are required for the email notifier")
		}
	default:
		return fmt.Errorf("unknown NOTIFIER %q", c.Notifier)
	}

	if c.AlertDropThreshold < 0 {
		return fmt.Errorf("ALERT_DROP_THRESHOLD must not be negative")
	}
	if c.LowRatingAlert < 0 || c.LowRatingAlert > 5 {
		return fmt.Errorf("LOW_RATING_ALERT must be between 0 and 5")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TIMEZONE; local calendar days are taken in it.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
